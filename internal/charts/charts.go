// Package charts binds aggregation results to Plotly figures.
// Figures are rendered client-side by Plotly.js.
package charts

import (
	"encoding/json"
	"fmt"
	"math"
)

// Colour sequences matching the plotly.express palettes the dashboard uses.
var (
	Agsunset = []string{
		"rgb(75, 41, 145)", "rgb(135, 44, 162)", "rgb(192, 54, 157)", "rgb(234, 79, 136)",
		"rgb(250, 120, 118)", "rgb(246, 169, 122)", "rgb(237, 217, 163)",
	}
	Plasma = []string{
		"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
		"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921",
	}
	Rainbow = []string{
		"rgb(150,0,90)", "rgb(0,0,200)", "rgb(0,25,255)", "rgb(0,152,255)", "rgb(44,255,150)",
		"rgb(151,255,0)", "rgb(255,234,0)", "rgb(255,111,0)", "rgb(255,0,0)",
	}
)

// Figure is a Plotly figure: a list of traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// JSON encodes the figure for embedding in a page.
func (f *Figure) JSON() (string, error) {
	out, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("encode figure: %w", err)
	}
	return string(out), nil
}

type Trace struct {
	Type          string    `json:"type"`
	Name          string    `json:"name,omitempty"`
	Orientation   string    `json:"orientation,omitempty"`
	X             any       `json:"x,omitempty"`
	Y             any       `json:"y,omitempty"`
	Labels        []string  `json:"labels,omitempty"`
	Values        []float64 `json:"values,omitempty"`
	Locations     []string  `json:"locations,omitempty"`
	LocationMode  string    `json:"locationmode,omitempty"`
	Z             []float64 `json:"z,omitempty"`
	Text          []string  `json:"text,omitempty"`
	TextInfo      string    `json:"textinfo,omitempty"`
	TextPosition  string    `json:"textposition,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	ColorScale    [][2]any  `json:"colorscale,omitempty"`
	ColorBar      *ColorBar `json:"colorbar,omitempty"`
	Marker        *Marker   `json:"marker,omitempty"`
	ShowLegend    *bool     `json:"showlegend,omitempty"`
}

type Marker struct {
	Color      any       `json:"color,omitempty"`
	Colors     []string  `json:"colors,omitempty"`
	ColorScale [][2]any  `json:"colorscale,omitempty"`
	ShowScale  bool      `json:"showscale,omitempty"`
	Size       []float64 `json:"size,omitempty"`
	SizeMode   string    `json:"sizemode,omitempty"`
	SizeRef    float64   `json:"sizeref,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

type ColorBar struct {
	Title Title `json:"title"`
}

type Title struct {
	Text string `json:"text"`
}

type Axis struct {
	Title     Title  `json:"title"`
	AutoRange string `json:"autorange,omitempty"`
}

type Geo struct {
	ShowFrame      bool `json:"showframe"`
	ShowCoastlines bool `json:"showcoastlines"`
}

type Layout struct {
	Title      Title `json:"title"`
	ShowLegend bool  `json:"showlegend"`
	XAxis      *Axis `json:"xaxis,omitempty"`
	YAxis      *Axis `json:"yaxis,omitempty"`
	Geo        *Geo  `json:"geo,omitempty"`
	Height     int   `json:"height,omitempty"`
}

// ColorScale spreads colours evenly over [0, 1].
func ColorScale(colors []string) [][2]any {
	if len(colors) == 0 {
		return nil
	}
	if len(colors) == 1 {
		return [][2]any{{0.0, colors[0]}, {1.0, colors[0]}}
	}
	scale := make([][2]any, 0, len(colors))
	for i, color := range colors {
		stop := float64(i) / float64(len(colors)-1)
		scale = append(scale, [2]any{round(stop, 4), color})
	}
	return scale
}

func cycle(colors []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = colors[i%len(colors)]
	}
	return out
}

func round(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

func roundAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, value := range values {
		out[i] = round(value, 2)
	}
	return out
}

func boolPtr(v bool) *bool {
	return &v
}
