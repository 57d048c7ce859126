package aggregate

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/codr1/airbnbviz/internal/models"
	"github.com/codr1/airbnbviz/internal/query"
)

func listings() []models.Listing {
	return []models.Listing{
		{ID: "1", HostName: "Ana", PropertyType: "Apartment", RoomType: "Entire home/apt", Country: "United States", Price: 50, Availability365: 100},
		{ID: "2", HostName: "Ana", PropertyType: "Apartment", RoomType: "Private room", Country: "United States", Price: 150, Availability365: 200},
		{ID: "3", HostName: "Ben", PropertyType: "House", RoomType: "Private room", Country: "France", Price: 80, Availability365: 50},
		{ID: "4", HostName: "Cy", PropertyType: "Loft", RoomType: "Shared room", Country: "Brazil", Price: 20, Availability365: 365},
		{ID: "5", HostName: "Dee", PropertyType: "House", RoomType: "Entire home/apt", Country: "Brazil", Price: math.NaN(), Availability365: 0},
	}
}

func usFranceRows() []models.Listing {
	return []models.Listing{
		{Country: "US", Price: 50},
		{Country: "US", Price: 150},
		{Country: "FR", Price: 80},
	}
}

func TestRunCountWithPriceFilter(t *testing.T) {
	predicate := query.And(
		query.GreaterOrEqual(models.ColumnPrice, 0),
		query.LessOrEqual(models.ColumnPrice, 100),
	)

	result, err := Run(usFranceRows(), predicate, Spec{
		GroupBy: []string{models.ColumnCountry},
		Metric:  Count(),
		Order:   Descending,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Result{
		{Key: []string{"FR"}, Value: 1, Rows: 1},
		{Key: []string{"US"}, Value: 1, Rows: 1},
	}
	if !reflect.DeepEqual(result, want) {
		t.Fatalf("Run() = %+v, want %+v", result, want)
	}
}

func TestRunMeanTopOne(t *testing.T) {
	result, err := Run(usFranceRows(), query.MatchAll(), Spec{
		GroupBy: []string{models.ColumnCountry},
		Metric:  Mean(models.ColumnPrice),
		Order:   Descending,
		TopN:    1,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Result{{Key: []string{"US"}, Value: 100, Rows: 2}}
	if !reflect.DeepEqual(result, want) {
		t.Fatalf("Run() = %+v, want %+v", result, want)
	}
}

func TestRunFilteredToNothingIsEmptyNotError(t *testing.T) {
	rows := []models.Listing{{Country: "DE", RoomType: "Private room", Price: 40}}
	selection := models.DefaultSelection(40, 40)
	selection.Country = "FR"

	result, err := Run(rows, query.Build(selection), Spec{
		GroupBy: []string{models.ColumnRoomType},
		Metric:  Count(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("Run() = %+v, want empty result", result)
	}
}

func TestRunCountSumsToFilteredRows(t *testing.T) {
	rows := listings()
	selections := []models.FilterSelection{
		models.DefaultSelection(0, 1000),
		{Country: "Brazil", PropertyType: models.AllOption, PriceMin: 0, PriceMax: 1000},
		{Country: models.AllOption, PropertyType: "House", PriceMin: 0, PriceMax: 1000},
		{Country: models.AllOption, PropertyType: models.AllOption, RoomTypes: []string{"Private room"}, PriceMin: 0, PriceMax: 100},
	}

	for _, selection := range selections {
		predicate := query.Build(selection)
		result, err := Run(rows, predicate, Spec{GroupBy: []string{models.ColumnRoomType}, Metric: Count()})
		if err != nil {
			t.Fatalf("Run(%s) error = %v", predicate, err)
		}

		var sum float64
		for _, group := range result {
			sum += group.Value
		}
		filtered := len(query.Filter(rows, predicate))
		if int(sum) != filtered || result.TotalRows() != filtered {
			t.Fatalf("Run(%s) counts sum to %v, want %d", predicate, sum, filtered)
		}
	}
}

func TestRunTopNReturnsHighestGroups(t *testing.T) {
	rows := listings()
	full, err := Run(rows, query.MatchAll(), Spec{GroupBy: []string{models.ColumnHostName}, Metric: Count()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for topN := 1; topN <= len(full)+1; topN++ {
		result, err := Run(rows, query.MatchAll(), Spec{GroupBy: []string{models.ColumnHostName}, Metric: Count(), TopN: topN})
		if err != nil {
			t.Fatalf("Run(top %d) error = %v", topN, err)
		}
		if len(result) > topN {
			t.Fatalf("Run(top %d) returned %d groups", topN, len(result))
		}
		want := full
		if topN < len(full) {
			want = full[:topN]
		}
		if !reflect.DeepEqual(result, want) {
			t.Fatalf("Run(top %d) = %+v, want %+v", topN, result, want)
		}
	}

	if full[0].Label() != "Ana" || full[0].Value != 2 {
		t.Fatalf("expected Ana with 2 listings first, got %+v", full[0])
	}
}

func TestRunTiesBreakLexically(t *testing.T) {
	result, err := Run(listings(), query.MatchAll(), Spec{
		GroupBy: []string{models.ColumnHostName},
		Metric:  Count(),
		Order:   Ascending,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"Ben", "Cy", "Dee", "Ana"}
	if got := result.Labels(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Labels() = %v, want %v", got, want)
	}
}

func TestRunMeanSkipsMissingValues(t *testing.T) {
	result, err := Run(listings(), query.MatchAll(), Spec{
		GroupBy: []string{models.ColumnCountry},
		Metric:  Mean(models.ColumnPrice),
		Order:   Ascending,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Result{
		{Key: []string{"Brazil"}, Value: 20, Rows: 2},
		{Key: []string{"France"}, Value: 80, Rows: 1},
		{Key: []string{"United States"}, Value: 100, Rows: 2},
	}
	if !reflect.DeepEqual(result, want) {
		t.Fatalf("Run() = %+v, want %+v", result, want)
	}
}

func TestRunMultiColumnGroupsAndSum(t *testing.T) {
	result, err := Run(listings(), query.MatchAll(), Spec{
		GroupBy: []string{models.ColumnCountry, models.ColumnRoomType},
		Metric:  Sum(models.ColumnAvailability365),
		Order:   Descending,
		TopN:    2,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Result{
		{Key: []string{"Brazil", "Shared room"}, Value: 365, Rows: 1},
		{Key: []string{"United States", "Private room"}, Value: 200, Rows: 1},
	}
	if !reflect.DeepEqual(result, want) {
		t.Fatalf("Run() = %+v, want %+v", result, want)
	}
	if result[0].Label() != "Brazil / Shared room" {
		t.Fatalf("Label() = %q", result[0].Label())
	}
}

func TestRunDataErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []models.Listing
		spec Spec
	}{
		{name: "missing_group_by", rows: listings(), spec: Spec{Metric: Count()}},
		{name: "unknown_group_by", rows: listings(), spec: Spec{GroupBy: []string{"Bed_type"}, Metric: Count()}},
		{name: "unknown_metric_column", rows: listings(), spec: Spec{GroupBy: []string{models.ColumnCountry}, Metric: Mean("Cleaning_fee")}},
		{name: "non_numeric_metric_column", rows: listings(), spec: Spec{GroupBy: []string{models.ColumnCountry}, Metric: Mean(models.ColumnHostName)}},
		{name: "empty_rows", rows: nil, spec: Spec{GroupBy: []string{models.ColumnCountry}, Metric: Count()}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := Run(test.rows, query.MatchAll(), test.spec)
			if err == nil {
				t.Fatalf("Run() = %+v, want DataError", result)
			}
			var dataErr *DataError
			if !errors.As(err, &dataErr) {
				t.Fatalf("Run() error = %T, want *DataError", err)
			}
			if result != nil {
				t.Fatalf("Run() returned data alongside an error: %+v", result)
			}
		})
	}
}

func TestParseMetricAndOrder(t *testing.T) {
	metric, err := ParseMetric("MEAN", models.ColumnPrice)
	if err != nil || metric != Mean(models.ColumnPrice) {
		t.Fatalf("ParseMetric(mean) = %v, %v", metric, err)
	}
	if metric, err := ParseMetric("", ""); err != nil || metric != Count() {
		t.Fatalf("ParseMetric(\"\") = %v, %v", metric, err)
	}
	if _, err := ParseMetric("median", models.ColumnPrice); err == nil {
		t.Fatal("expected unknown metric to fail")
	}

	if order, err := ParseOrder("asc"); err != nil || order != Ascending {
		t.Fatalf("ParseOrder(asc) = %v, %v", order, err)
	}
	if order, err := ParseOrder(""); err != nil || order != Descending {
		t.Fatalf("ParseOrder(\"\") = %v, %v", order, err)
	}
	if _, err := ParseOrder("sideways"); err == nil {
		t.Fatal("expected unknown order to fail")
	}
}
