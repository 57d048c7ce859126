// Package insights runs the fixed chart catalogue of the Overview and Explore
// pages against a dataset snapshot.
package insights

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/codr1/airbnbviz/internal/aggregate"
	"github.com/codr1/airbnbviz/internal/charts"
	"github.com/codr1/airbnbviz/internal/models"
	"github.com/codr1/airbnbviz/internal/query"
)

const (
	topN = 10

	SectionPrice        = "Price Analysis"
	SectionAvailability = "Availability Analysis"
)

// Chart is one rendered chart slot. Figure is nil when there is nothing to draw.
type Chart struct {
	ID      string
	Section string
	Title   string
	Figure  *charts.Figure
}

type chartDef struct {
	id      string
	section string
	title   string
	spec    aggregate.Spec
	build   func(title string, result aggregate.Result) *charts.Figure
}

var overviewCharts = []chartDef{
	{
		id:    "top-property-types",
		title: "Top 10 Property Types",
		spec:  aggregate.Spec{GroupBy: []string{models.ColumnPropertyType}, Metric: aggregate.Count(), Order: aggregate.Descending, TopN: topN},
		build: func(title string, result aggregate.Result) *charts.Figure {
			return charts.HorizontalBar(title, "Listings", models.ColumnPropertyType, result)
		},
	},
	{
		id:    "top-hosts",
		title: "Top 10 Hosts with Highest number of Listings",
		spec:  aggregate.Spec{GroupBy: []string{models.ColumnHostName}, Metric: aggregate.Count(), Order: aggregate.Descending, TopN: topN},
		build: func(title string, result aggregate.Result) *charts.Figure {
			return charts.HorizontalBar(title, "Listings", models.ColumnHostName, result)
		},
	},
	{
		id:    "room-type-share",
		title: "Total Listings in each Room_types",
		spec:  aggregate.Spec{GroupBy: []string{models.ColumnRoomType}, Metric: aggregate.Count(), Order: aggregate.Descending},
		build: charts.Pie,
	},
	{
		id:    "listings-by-country",
		title: "Total Listings in each Country",
		spec:  aggregate.Spec{GroupBy: []string{models.ColumnCountry}, Metric: aggregate.Count(), Order: aggregate.Descending},
		build: func(title string, result aggregate.Result) *charts.Figure {
			return charts.Choropleth(title, "Total_Listings", result)
		},
	},
}

var exploreCharts = []chartDef{
	{
		id:      "avg-price-by-room-type",
		section: SectionPrice,
		title:   "Avg Price in each Room type",
		spec:    aggregate.Spec{GroupBy: []string{models.ColumnRoomType}, Metric: aggregate.Mean(models.ColumnPrice), Order: aggregate.Ascending},
		build:   func(title string, result aggregate.Result) *charts.Figure {
			return charts.Bar(title, models.ColumnPrice, models.ColumnRoomType, result)
		},
	},
	{
		id:      "avg-price-by-country",
		section: SectionPrice,
		title:   "Avg Price in each Country",
		spec:    aggregate.Spec{GroupBy: []string{models.ColumnCountry}, Metric: aggregate.Mean(models.ColumnPrice), Order: aggregate.Descending},
		build:   func(title string, result aggregate.Result) *charts.Figure {
			return charts.ScatterGeo(title, models.ColumnPrice, result, false)
		},
	},
	{
		id:      "availability-by-room-type",
		section: SectionAvailability,
		title:   "Availability by Room_type",
		spec:    aggregate.Spec{GroupBy: []string{models.ColumnRoomType}, Metric: aggregate.Sum(models.ColumnAvailability365), Order: aggregate.Descending},
		build:   func(title string, result aggregate.Result) *charts.Figure {
			return charts.Bar(title, models.ColumnAvailability365, models.ColumnRoomType, result)
		},
	},
	{
		id:      "avg-availability-by-country",
		section: SectionAvailability,
		title:   "Avg Availability in each Country",
		spec:    aggregate.Spec{GroupBy: []string{models.ColumnCountry}, Metric: aggregate.Mean(models.ColumnAvailability365), Order: aggregate.Descending},
		build:   func(title string, result aggregate.Result) *charts.Figure {
			return charts.ScatterGeo(title, models.ColumnAvailability365, result, true)
		},
	},
}

// Overview builds the Overview insight charts for selection.
func Overview(ctx context.Context, rows []models.Listing, selection models.FilterSelection) ([]Chart, error) {
	return run(ctx, overviewCharts, rows, selection)
}

// Explore builds the Explore page charts for selection.
func Explore(ctx context.Context, rows []models.Listing, selection models.FilterSelection) ([]Chart, error) {
	return run(ctx, exploreCharts, rows, selection)
}

// run aggregates each chart. A DataError leaves the chart empty so the page
// can show a placeholder; any other error aborts.
func run(ctx context.Context, defs []chartDef, rows []models.Listing, selection models.FilterSelection) ([]Chart, error) {
	logger := log.Ctx(ctx)
	predicate := query.Build(selection)
	logger.Debug().Str("predicate", predicate.String()).Int("rows", len(rows)).Msg("Building charts")

	out := make([]Chart, 0, len(defs))
	for _, def := range defs {
		chart := Chart{ID: def.id, Section: def.section, Title: def.title}
		result, err := aggregate.Run(rows, predicate, def.spec)
		if err != nil {
			var dataErr *aggregate.DataError
			if !errors.As(err, &dataErr) {
				return nil, err
			}
			logger.Debug().Err(err).Str("chart", def.id).Msg("No data for chart")
			out = append(out, chart)
			continue
		}
		chart.Figure = def.build(def.title, result)
		out = append(out, chart)
	}
	return out, nil
}
