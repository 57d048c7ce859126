// internal/templates/components/explore/explore.go
package explore

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/codr1/airbnbviz/internal/insights"
	"github.com/codr1/airbnbviz/internal/templates/components/widgets"
)

// ChartsTarget is the element the filter form reloads.
const ChartsTarget = "explore-charts"

func Page(form widgets.FilterForm, charts []insights.Chart) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="space-y-6"><h1 class="text-3xl font-semibold">Explore more about the Airbnb data</h1>`); err != nil {
			return err
		}
		if err := widgets.Filters(form).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div id="`+ChartsTarget+`">`); err != nil {
			return err
		}
		if err := Charts(charts).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

// Charts is the partial swapped in on every filter change.
func Charts(charts []insights.Chart) templ.Component {
	return widgets.ChartSections(charts)
}
