// Package aggregate groups filtered listings and computes a per-group metric
// for chart binding.
package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codr1/airbnbviz/internal/models"
	"github.com/codr1/airbnbviz/internal/query"
)

// keySeparator joins multi-column group keys into a map key. It cannot occur
// in CSV-sourced text.
const keySeparator = "\x1f"

type MetricKind int

const (
	MetricCount MetricKind = iota
	MetricMean
	MetricSum
)

func (k MetricKind) String() string {
	switch k {
	case MetricCount:
		return "count"
	case MetricMean:
		return "mean"
	case MetricSum:
		return "sum"
	default:
		return "unknown"
	}
}

// Metric is the summary statistic computed per group. Column is ignored for
// MetricCount.
type Metric struct {
	Kind   MetricKind
	Column string
}

func Count() Metric {
	return Metric{Kind: MetricCount}
}

func Mean(column string) Metric {
	return Metric{Kind: MetricMean, Column: column}
}

func Sum(column string) Metric {
	return Metric{Kind: MetricSum, Column: column}
}

// ParseMetric maps a metric name ("count", "mean", "sum") and its column to
// a Metric. Column validity is checked by Run.
func ParseMetric(name, column string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "count":
		return Count(), nil
	case "mean", "avg":
		return Mean(column), nil
	case "sum":
		return Sum(column), nil
	default:
		return Metric{}, fmt.Errorf("unknown metric %q", name)
	}
}

func (m Metric) String() string {
	if m.Kind == MetricCount {
		return m.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", m.Kind, m.Column)
}

type Order int

const (
	Descending Order = iota
	Ascending
)

func (o Order) String() string {
	if o == Ascending {
		return "asc"
	}
	return "desc"
}

// ParseOrder accepts "asc" or "desc"; empty means Descending.
func ParseOrder(value string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "desc":
		return Descending, nil
	case "asc":
		return Ascending, nil
	default:
		return Descending, fmt.Errorf("unknown order %q", value)
	}
}

// Spec describes one aggregation. TopN <= 0 keeps every group.
type Spec struct {
	GroupBy []string
	Metric  Metric
	TopN    int
	Order   Order
}

// Group is one partition of the filtered rows. Rows counts the listings in
// the partition regardless of the metric.
type Group struct {
	Key   []string `json:"key"`
	Value float64  `json:"value"`
	Rows  int      `json:"rows"`
}

// Label joins a multi-column key for display.
func (g Group) Label() string {
	return strings.Join(g.Key, " / ")
}

// Result is the ordered list of groups returned by Run.
type Result []Group

// TotalRows sums the partition sizes.
func (r Result) TotalRows() int {
	total := 0
	for _, group := range r {
		total += group.Rows
	}
	return total
}

// Labels returns the display label of every group in order.
func (r Result) Labels() []string {
	labels := make([]string, 0, len(r))
	for _, group := range r {
		labels = append(labels, group.Label())
	}
	return labels
}

// Values returns the metric value of every group in order.
func (r Result) Values() []float64 {
	values := make([]float64, 0, len(r))
	for _, group := range r {
		values = append(values, group.Value)
	}
	return values
}

// DataError reports an aggregation that cannot produce data: an unknown
// column or an empty input collection.
type DataError struct {
	Column string
	Reason string
}

func (e *DataError) Error() string {
	if e.Column == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Column)
}

type partition struct {
	key   []string
	rows  int
	sum   float64
	valid int
}

// Run filters rows with predicate, groups the remainder by spec.GroupBy and
// computes spec.Metric per group. Ties are broken by ascending key order.
// A predicate that removes every row yields an empty Result, not an error.
func Run(rows []models.Listing, predicate query.Predicate, spec Spec) (Result, error) {
	if err := validate(rows, spec); err != nil {
		return nil, err
	}

	filtered := query.Filter(rows, predicate)

	partitions := make(map[string]*partition)
	order := make([]string, 0)
	for _, row := range filtered {
		key, ok := groupKey(row, spec.GroupBy)
		if !ok {
			continue
		}
		mapKey := strings.Join(key, keySeparator)
		entry, exists := partitions[mapKey]
		if !exists {
			entry = &partition{key: key}
			partitions[mapKey] = entry
			order = append(order, mapKey)
		}
		entry.rows++
		if spec.Metric.Kind == MetricCount {
			continue
		}
		if value, ok := row.Number(spec.Metric.Column); ok {
			entry.sum += value
			entry.valid++
		}
	}

	result := make(Result, 0, len(partitions))
	for _, mapKey := range order {
		entry := partitions[mapKey]
		group := Group{Key: entry.key, Rows: entry.rows}
		switch spec.Metric.Kind {
		case MetricCount:
			group.Value = float64(entry.rows)
		case MetricMean:
			if entry.valid == 0 {
				continue
			}
			group.Value = entry.sum / float64(entry.valid)
		case MetricSum:
			group.Value = entry.sum
		}
		result = append(result, group)
	}

	sortGroups(result, spec.Order)

	if spec.TopN > 0 && len(result) > spec.TopN {
		result = result[:spec.TopN]
	}
	return result, nil
}

func validate(rows []models.Listing, spec Spec) error {
	if len(spec.GroupBy) == 0 {
		return &DataError{Reason: "group by column is required"}
	}
	for _, column := range spec.GroupBy {
		if !models.IsColumn(column) {
			return &DataError{Column: column, Reason: "unknown group by column"}
		}
	}
	switch spec.Metric.Kind {
	case MetricCount:
	case MetricMean, MetricSum:
		if !models.IsNumericColumn(spec.Metric.Column) {
			return &DataError{Column: spec.Metric.Column, Reason: "metric column is not a numeric column"}
		}
	default:
		return &DataError{Reason: "unsupported metric"}
	}
	if len(rows) == 0 {
		return &DataError{Reason: "no rows to aggregate"}
	}
	return nil
}

// groupKey returns the key tuple for row. Rows with a missing value in any
// group-by column belong to no group.
func groupKey(row models.Listing, columns []string) ([]string, bool) {
	key := make([]string, 0, len(columns))
	for _, column := range columns {
		value, ok := row.Text(column)
		if !ok {
			return nil, false
		}
		key = append(key, value)
	}
	return key, true
}

func sortGroups(groups Result, order Order) {
	sort.SliceStable(groups, func(i, j int) bool {
		left, right := groups[i].Value, groups[j].Value
		if left != right {
			if order == Ascending {
				return left < right
			}
			return left > right
		}
		return compareKeys(groups[i].Key, groups[j].Key) < 0
	})
}

func compareKeys(left, right []string) int {
	for i := 0; i < len(left) && i < len(right); i++ {
		if c := strings.Compare(left[i], right[i]); c != 0 {
			return c
		}
	}
	return len(left) - len(right)
}
