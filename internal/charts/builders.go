package charts

import (
	"math"

	"github.com/codr1/airbnbviz/internal/aggregate"
)

const (
	defaultHeight    = 450
	maxMarkerSizePx  = 40.0
	locationModeName = "country names"
)

// HorizontalBar renders a ranked result as horizontal bars, first group on top.
func HorizontalBar(title, valueLabel, categoryLabel string, result aggregate.Result) *Figure {
	if len(result) == 0 {
		return nil
	}

	labels := result.Labels()
	return &Figure{
		Data: []Trace{{
			Type:        "bar",
			Orientation: "h",
			X:           roundAll(result.Values()),
			Y:           labels,
			Marker:      &Marker{Color: cycle(Agsunset, len(labels))},
			ShowLegend:  boolPtr(false),
		}},
		Layout: Layout{
			Title:  Title{Text: title},
			XAxis:  &Axis{Title: Title{Text: valueLabel}},
			YAxis:  &Axis{Title: Title{Text: categoryLabel}, AutoRange: "reversed"},
			Height: defaultHeight,
		},
	}
}

// Bar renders a result as vertical bars coloured by value.
func Bar(title, valueLabel, categoryLabel string, result aggregate.Result) *Figure {
	if len(result) == 0 {
		return nil
	}

	values := roundAll(result.Values())
	return &Figure{
		Data: []Trace{{
			Type: "bar",
			X:    result.Labels(),
			Y:    values,
			Marker: &Marker{
				Color:      values,
				ColorScale: ColorScale(Plasma),
				ShowScale:  true,
				ColorBar:   &ColorBar{Title: Title{Text: valueLabel}},
			},
		}},
		Layout: Layout{
			Title:  Title{Text: title},
			XAxis:  &Axis{Title: Title{Text: categoryLabel}},
			YAxis:  &Axis{Title: Title{Text: valueLabel}},
			Height: defaultHeight,
		},
	}
}

// Pie renders each group's share of the total.
func Pie(title string, result aggregate.Result) *Figure {
	if len(result) == 0 {
		return nil
	}

	return &Figure{
		Data: []Trace{{
			Type:         "pie",
			Labels:       result.Labels(),
			Values:       roundAll(result.Values()),
			TextInfo:     "value+label",
			TextPosition: "outside",
			Marker:       &Marker{Colors: cycle(Rainbow, len(result))},
		}},
		Layout: Layout{
			Title:      Title{Text: title},
			ShowLegend: true,
			Height:     defaultHeight,
		},
	}
}

// Choropleth shades countries by value. Group keys must be country names.
func Choropleth(title, valueLabel string, result aggregate.Result) *Figure {
	if len(result) == 0 {
		return nil
	}

	return &Figure{
		Data: []Trace{{
			Type:         "choropleth",
			Locations:    result.Labels(),
			LocationMode: locationModeName,
			Z:            roundAll(result.Values()),
			ColorScale:   ColorScale(Plasma),
			ColorBar:     &ColorBar{Title: Title{Text: valueLabel}},
		}},
		Layout: Layout{
			Title:  Title{Text: title},
			Geo:    &Geo{ShowFrame: false, ShowCoastlines: true},
			Height: defaultHeight,
		},
	}
}

// ScatterGeo places a marker per country, sized and coloured by value.
// Integer truncates values before plotting.
func ScatterGeo(title, valueLabel string, result aggregate.Result, integer bool) *Figure {
	if len(result) == 0 {
		return nil
	}

	values := result.Values()
	if integer {
		for i, value := range values {
			values[i] = math.Trunc(value)
		}
	}
	values = roundAll(values)

	maxValue := 0.0
	for _, value := range values {
		maxValue = math.Max(maxValue, value)
	}
	sizeRef := 1.0
	if maxValue > 0 {
		sizeRef = 2.0 * maxValue / (maxMarkerSizePx * maxMarkerSizePx)
	}
	sizes := make([]float64, len(values))
	for i, value := range values {
		sizes[i] = math.Max(value, 0)
	}

	return &Figure{
		Data: []Trace{{
			Type:          "scattergeo",
			Locations:     result.Labels(),
			LocationMode:  locationModeName,
			Text:          result.Labels(),
			HoverTemplate: "%{text}<br>" + valueLabel + ": %{marker.color}<extra></extra>",
			Marker: &Marker{
				Color:      values,
				ColorScale: ColorScale(Agsunset),
				ShowScale:  true,
				Size:       sizes,
				SizeMode:   "area",
				SizeRef:    sizeRef,
				ColorBar:   &ColorBar{Title: Title{Text: valueLabel}},
			},
		}},
		Layout: Layout{
			Title:  Title{Text: title},
			Geo:    &Geo{ShowFrame: false, ShowCoastlines: true},
			Height: defaultHeight,
		},
	}
}
