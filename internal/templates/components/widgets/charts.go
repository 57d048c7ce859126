package widgets

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/airbnbviz/internal/insights"
)

const noDataMessage = "No data to display"

// ChartGrid renders chart cards two per row. Charts without a figure show
// a placeholder instead.
func ChartGrid(charts []insights.Chart) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := buildChartGridHTML(charts)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, body)
		return err
	})
}

func buildChartGridHTML(charts []insights.Chart) (string, error) {
	var builder strings.Builder
	builder.WriteString(`<div class="grid gap-6 lg:grid-cols-2">`)
	for _, chart := range charts {
		builder.WriteString(`<section class="rounded-lg border border-border bg-background p-4 shadow-sm">`)
		builder.WriteString(fmt.Sprintf(`<h3 class="mb-2 text-lg font-semibold">%s</h3>`, html.EscapeString(chart.Title)))
		if chart.Figure == nil {
			builder.WriteString(fmt.Sprintf(
				`<div id="chart-%s" class="flex h-64 items-center justify-center rounded border border-dashed border-border text-sm text-muted-foreground">%s</div>`,
				chart.ID, noDataMessage,
			))
		} else {
			payload, err := chart.Figure.JSON()
			if err != nil {
				return "", fmt.Errorf("encode chart %s: %w", chart.ID, err)
			}
			builder.WriteString(fmt.Sprintf(
				`<div id="chart-%s" class="chart" data-figure="%s"></div>`,
				chart.ID, html.EscapeString(payload),
			))
		}
		builder.WriteString(`</section>`)
	}
	builder.WriteString(`</div>`)
	return builder.String(), nil
}

// ChartSections renders charts grouped under a heading per Section, in the
// order sections first appear.
func ChartSections(charts []insights.Chart) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var order []string
		grouped := make(map[string][]insights.Chart)
		for _, chart := range charts {
			if _, ok := grouped[chart.Section]; !ok {
				order = append(order, chart.Section)
			}
			grouped[chart.Section] = append(grouped[chart.Section], chart)
		}

		for _, section := range order {
			if section != "" {
				if _, err := io.WriteString(w, fmt.Sprintf(`<h2 class="mt-6 mb-3 text-xl font-semibold">%s</h2>`, html.EscapeString(section))); err != nil {
					return err
				}
			}
			body, err := buildChartGridHTML(grouped[section])
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, body); err != nil {
				return err
			}
		}
		return nil
	})
}
