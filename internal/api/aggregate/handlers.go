// internal/api/aggregate/handlers.go
package aggregate

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/airbnbviz/internal/aggregate"
	"github.com/codr1/airbnbviz/internal/api/apiutil"
	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/query"
	"github.com/codr1/airbnbviz/internal/request"
)

var provider dataset.Provider

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(p dataset.Provider) {
	provider = p
}

type groupResponse struct {
	Key   []string `json:"key"`
	Label string   `json:"label"`
	Value float64  `json:"value"`
	Rows  int      `json:"rows"`
}

type aggregateResponse struct {
	GroupBy      []string        `json:"group_by"`
	Metric       string          `json:"metric"`
	Order        string          `json:"order"`
	TopN         int             `json:"top_n"`
	Predicate    string          `json:"predicate"`
	FilteredRows int             `json:"filtered_rows"`
	Groups       []groupResponse `json:"groups"`
}

// HandleAggregate runs one aggregation for
// GET /api/v1/aggregate?group_by=...&metric=...&column=...&top_n=...&order=...
// plus the usual filter parameters.
func HandleAggregate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	snapshot, ok := apiutil.RequireSnapshot(w, r, provider)
	if !ok {
		return
	}

	values := r.URL.Query()
	spec, err := parseSpec(values.Get("group_by"), values["group_by"], values.Get("metric"), values.Get("column"), values.Get("top_n"), values.Get("order"))
	if err != nil {
		apiutil.WriteJSONError(r.Context(), w, http.StatusBadRequest, err.Error())
		return
	}

	selection, err := request.ParseSelection(values, snapshot.Options())
	if err != nil {
		apiutil.WriteJSONError(r.Context(), w, http.StatusBadRequest, err.Error())
		return
	}
	predicate := query.Build(selection)

	result, err := aggregate.Run(snapshot.Listings(), predicate, spec)
	if err != nil {
		var dataErr *aggregate.DataError
		if errors.As(err, &dataErr) {
			logger.Debug().Err(err).Msg("Aggregation rejected")
			apiutil.WriteJSONError(r.Context(), w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		logger.Error().Err(err).Msg("Aggregation failed")
		apiutil.WriteJSONError(r.Context(), w, http.StatusInternalServerError, "aggregation failed")
		return
	}

	groups := make([]groupResponse, 0, len(result))
	for _, group := range result {
		groups = append(groups, groupResponse{Key: group.Key, Label: group.Label(), Value: group.Value, Rows: group.Rows})
	}
	response := aggregateResponse{
		GroupBy:      spec.GroupBy,
		Metric:       spec.Metric.String(),
		Order:        spec.Order.String(),
		TopN:         spec.TopN,
		Predicate:    predicate.String(),
		FilteredRows: len(query.Filter(snapshot.Listings(), predicate)),
		Groups:       groups,
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("Failed to write aggregate response")
	}
}

// parseSpec accepts group_by either repeated or comma separated.
func parseSpec(groupBy string, repeated []string, metricName, column, topN, order string) (aggregate.Spec, error) {
	var spec aggregate.Spec

	if len(repeated) <= 1 {
		repeated = strings.Split(groupBy, ",")
	}
	for _, value := range repeated {
		if value = strings.TrimSpace(value); value != "" {
			spec.GroupBy = append(spec.GroupBy, value)
		}
	}

	metric, err := aggregate.ParseMetric(metricName, strings.TrimSpace(column))
	if err != nil {
		return aggregate.Spec{}, err
	}
	spec.Metric = metric

	if topN = strings.TrimSpace(topN); topN != "" {
		n, err := strconv.Atoi(topN)
		if err != nil || n < 0 {
			return aggregate.Spec{}, errors.New("top_n must be a non-negative integer")
		}
		spec.TopN = n
	}

	if spec.Order, err = aggregate.ParseOrder(order); err != nil {
		return aggregate.Spec{}, err
	}
	return spec, nil
}
