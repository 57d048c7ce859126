// internal/templates/components/overview/overview.go
package overview

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/airbnbviz/internal/insights"
	"github.com/codr1/airbnbviz/internal/models"
	"github.com/codr1/airbnbviz/internal/templates/components/widgets"
)

const (
	TabRaw      = "raw"
	TabInsights = "insights"

	ViewRaw       = "raw"
	ViewDataframe = "dataframe"

	DataTarget   = "overview-data"
	ChartsTarget = "overview-charts"
)

var tabs = []struct{ key, label string }{
	{TabRaw, "Raw Data"},
	{TabInsights, "Insights"},
}

// Page renders the tab strip with body as the active tab's content.
func Page(activeTab string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(`<div class="space-y-6"><div class="flex gap-2 border-b border-border" role="tablist">`)
		for _, tab := range tabs {
			class := "px-4 py-2 text-lg font-medium text-muted-foreground"
			selected := "false"
			if tab.key == activeTab {
				class = "px-4 py-2 text-lg font-semibold border-b-2"
				selected = "true"
			}
			builder.WriteString(fmt.Sprintf(
				`<a role="tab" aria-selected="%s" href="/overview?tab=%s" hx-get="/overview?tab=%s" hx-target="#main-content" hx-push-url="true" class="%s">%s</a>`,
				selected, tab.key, tab.key, class, tab.label,
			))
		}
		builder.WriteString(`</div><div id="overview-tab">`)
		if _, err := io.WriteString(w, builder.String()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

// RawTab renders the data source picker above panel.
func RawTab(view string, panel templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(fmt.Sprintf(
			`<label class="block text-sm font-medium">Select Data to View<select name="view" hx-get="/api/v1/overview/data" hx-target="#%s" hx-trigger="change" class="mt-1 rounded-md border border-border px-2 py-1 text-sm">`,
			DataTarget,
		))
		for _, option := range []struct{ value, label string }{{ViewRaw, "Raw Data"}, {ViewDataframe, "Dataframe"}} {
			selected := ""
			if option.value == view {
				selected = " selected"
			}
			builder.WriteString(fmt.Sprintf(`<option value="%s"%s>%s</option>`, option.value, selected, option.label))
		}
		builder.WriteString(fmt.Sprintf(`</select></label><div id="%s" class="mt-4">`, DataTarget))
		if _, err := io.WriteString(w, builder.String()); err != nil {
			return err
		}
		if err := panel.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// RawRecord shows one source document, or message when there is none.
func RawRecord(document, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if document == "" {
			_, err := io.WriteString(w, fmt.Sprintf(`<div class="rounded border border-dashed border-border p-4 text-sm text-muted-foreground">%s</div>`, html.EscapeString(message)))
			return err
		}
		_, err := io.WriteString(w, fmt.Sprintf(`<pre class="overflow-x-auto rounded-lg bg-muted p-4 text-xs">%s</pre>`, html.EscapeString(document)))
		return err
	})
}

// Table is one page of the dataframe view.
type Table struct {
	Rows       []models.Listing
	Page       int
	Pages      int
	TotalRows  int
	FirstIndex int
}

var tableColumns = []string{
	models.ColumnID,
	models.ColumnName,
	models.ColumnHostName,
	models.ColumnPropertyType,
	models.ColumnRoomType,
	models.ColumnCountry,
	models.ColumnPrice,
	models.ColumnAvailability365,
}

func Dataframe(table Table) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildDataframeHTML(table))
		return err
	})
}

func buildDataframeHTML(table Table) string {
	if table.TotalRows == 0 {
		return `<div class="rounded border border-dashed border-border p-4 text-sm text-muted-foreground">No rows loaded.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<div class="overflow-x-auto"><table class="min-w-full text-sm"><thead><tr><th class="px-2 py-1 text-left"></th>`)
	for _, column := range tableColumns {
		builder.WriteString(fmt.Sprintf(`<th class="px-2 py-1 text-left">%s</th>`, column))
	}
	builder.WriteString(`</tr></thead><tbody>`)
	for i, row := range table.Rows {
		builder.WriteString(fmt.Sprintf(`<tr class="border-t border-border"><td class="px-2 py-1 text-muted-foreground">%d</td>`, table.FirstIndex+i))
		for _, column := range tableColumns {
			value, _ := row.Text(column)
			builder.WriteString(fmt.Sprintf(`<td class="px-2 py-1">%s</td>`, html.EscapeString(value)))
		}
		builder.WriteString(`</tr>`)
	}
	builder.WriteString(`</tbody></table></div>`)

	builder.WriteString(fmt.Sprintf(
		`<div class="mt-3 flex items-center justify-between text-sm"><span>%d rows × %d columns</span><div class="flex items-center gap-2">`,
		table.TotalRows, len(tableColumns),
	))
	writePageButton(&builder, "Previous", table.Page-1, table.Page > 1)
	builder.WriteString(fmt.Sprintf(`<span>Page %d of %d</span>`, table.Page, table.Pages))
	writePageButton(&builder, "Next", table.Page+1, table.Page < table.Pages)
	builder.WriteString(`</div></div>`)
	return builder.String()
}

func writePageButton(builder *strings.Builder, label string, page int, enabled bool) {
	if !enabled {
		builder.WriteString(fmt.Sprintf(`<button type="button" disabled class="rounded-md border border-border px-3 py-1 opacity-50">%s</button>`, label))
		return
	}
	builder.WriteString(fmt.Sprintf(
		`<button type="button" hx-get="/api/v1/overview/data?view=%s&amp;page=%d" hx-target="#%s" class="rounded-md border border-border px-3 py-1 hover:bg-muted">%s</button>`,
		ViewDataframe, page, DataTarget, label,
	))
}

// InsightsTab renders the filter widgets above the Overview charts.
func InsightsTab(form widgets.FilterForm, charts []insights.Chart) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := widgets.Filters(form).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div id="`+ChartsTarget+`" class="mt-6">`); err != nil {
			return err
		}
		if err := Charts(charts).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Charts is the partial swapped in on every filter change.
func Charts(charts []insights.Chart) templ.Component {
	return widgets.ChartGrid(charts)
}
