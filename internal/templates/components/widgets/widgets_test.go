package widgets

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/codr1/airbnbviz/internal/aggregate"
	"github.com/codr1/airbnbviz/internal/charts"
	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/insights"
	"github.com/codr1/airbnbviz/internal/models"
)

func TestChartGridPlaceholderAndFigure(t *testing.T) {
	figure := charts.Pie("Rooms", aggregate.Result{{Key: []string{"Private room"}, Value: 2, Rows: 2}})
	grid := ChartGrid([]insights.Chart{
		{ID: "empty", Title: "Nothing here"},
		{ID: "rooms", Title: "Rooms", Figure: figure},
	})

	var buf bytes.Buffer
	if err := grid.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	body := buf.String()

	if !strings.Contains(body, `id="chart-empty"`) || !strings.Contains(body, noDataMessage) {
		t.Fatalf("expected placeholder for empty chart, got %s", body)
	}
	if !strings.Contains(body, `id="chart-rooms" class="chart" data-figure="{&#34;data&#34;`) {
		t.Fatalf("expected escaped figure JSON, got %s", body)
	}
}

func TestChartSectionsHeadings(t *testing.T) {
	sections := ChartSections([]insights.Chart{
		{ID: "a", Section: "Price Analysis", Title: "A"},
		{ID: "b", Section: "Availability Analysis", Title: "B"},
		{ID: "c", Section: "Price Analysis", Title: "C"},
	})

	var buf bytes.Buffer
	if err := sections.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	body := buf.String()

	price := strings.Index(body, "Price Analysis")
	availability := strings.Index(body, "Availability Analysis")
	chartC := strings.Index(body, `id="chart-c"`)
	if price < 0 || availability < 0 || chartC < 0 {
		t.Fatalf("missing section content: %s", body)
	}
	if !(price < chartC && chartC < availability) {
		t.Fatalf("chart c should be grouped under Price Analysis: %s", body)
	}
}

func TestFiltersMarksSelection(t *testing.T) {
	form := FilterForm{
		Endpoint: "/api/v1/explore/charts",
		Target:   "explore-charts",
		Options: dataset.Options{
			Countries:     []string{"Brazil", "Portugal"},
			PropertyTypes: []string{"Apartment", "House"},
			RoomTypes:     []string{"Entire home/apt", "Private room"},
			PriceMin:      25,
			PriceMax:      317,
		},
		Selection: models.FilterSelection{
			Country:      "Portugal",
			PropertyType: models.AllOption,
			RoomTypes:    []string{"Private room"},
			PriceMin:     40,
			PriceMax:     200,
		},
	}

	var buf bytes.Buffer
	if err := Filters(form).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	body := buf.String()

	for _, want := range []string{
		`hx-get="/api/v1/explore/charts"`,
		`<option value="Portugal" selected>`,
		`<option value="All" selected>`,
		`value="Private room" checked`,
		`name="price_min" step="any" min="25" max="317" value="40"`,
		`name="price_max" step="any" min="25" max="317" value="200"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in %s", want, body)
		}
	}
	if strings.Contains(body, `value="Entire home/apt" checked`) {
		t.Error("unselected room type should not be checked")
	}
}
