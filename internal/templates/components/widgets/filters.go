package widgets

import (
	"context"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/models"
)

// FilterForm is the set of filter widgets bound to one charts partial.
type FilterForm struct {
	Endpoint  string
	Target    string
	Options   dataset.Options
	Selection models.FilterSelection
}

// Filters renders the country, property type, room type and price widgets.
// Any change reloads Target from Endpoint with the form values.
func Filters(form FilterForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildFiltersHTML(form))
		return err
	})
}

func buildFiltersHTML(form FilterForm) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(
		`<form class="filters grid gap-4 rounded-lg border border-border p-4 md:grid-cols-4" hx-get="%s" hx-target="#%s" hx-swap="innerHTML" hx-trigger="change delay:200ms, submit">`,
		html.EscapeString(form.Endpoint), html.EscapeString(form.Target),
	))

	writeSelect(&builder, "country", "Country", form.Options.Countries, form.Selection.Country)
	writeSelect(&builder, "property_type", "Property type", form.Options.PropertyTypes, form.Selection.PropertyType)

	builder.WriteString(`<fieldset><legend class="text-sm font-medium">Room type</legend>`)
	for _, roomType := range form.Options.RoomTypes {
		checked := ""
		if form.Selection.HasRoomType(roomType) {
			checked = " checked"
		}
		value := html.EscapeString(roomType)
		builder.WriteString(fmt.Sprintf(
			`<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="room_type" value="%s"%s/>%s</label>`,
			value, checked, value,
		))
	}
	builder.WriteString(`</fieldset>`)

	minValue := formatNumber(form.Options.PriceMin)
	maxValue := formatNumber(form.Options.PriceMax)
	builder.WriteString(`<fieldset><legend class="text-sm font-medium">Price</legend><div class="flex gap-2">`)
	builder.WriteString(fmt.Sprintf(
		`<input type="number" name="price_min" step="any" min="%s" max="%s" value="%s" aria-label="Minimum price" class="w-full rounded-md border border-border px-2 py-1 text-sm"/>`,
		minValue, maxValue, formatNumber(form.Selection.PriceMin),
	))
	builder.WriteString(fmt.Sprintf(
		`<input type="number" name="price_max" step="any" min="%s" max="%s" value="%s" aria-label="Maximum price" class="w-full rounded-md border border-border px-2 py-1 text-sm"/>`,
		minValue, maxValue, formatNumber(form.Selection.PriceMax),
	))
	builder.WriteString(`</div></fieldset></form>`)
	return builder.String()
}

func writeSelect(builder *strings.Builder, name, label string, options []string, selected string) {
	builder.WriteString(fmt.Sprintf(
		`<label class="block text-sm font-medium">%s<select name="%s" class="mt-1 w-full rounded-md border border-border px-2 py-1 text-sm">`,
		label, name,
	))
	for _, option := range append([]string{models.AllOption}, options...) {
		attr := ""
		if option == selected {
			attr = " selected"
		}
		value := html.EscapeString(option)
		builder.WriteString(fmt.Sprintf(`<option value="%s"%s>%s</option>`, value, attr, value))
	}
	builder.WriteString(`</select></label>`)
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
