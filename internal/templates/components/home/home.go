// internal/templates/components/home/home.go
package home

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

const (
	domainText       = "Travel Industry, Property Management and Tourism."
	technologiesText = "Go, HTMX, Plotly, MongoDB, SQLite/PostgreSQL, Power BI."
	overviewText     = "This project analyzes Airbnb listing data from MongoDB Atlas after cleaning and preparation, with interactive geospatial visualizations and dynamic plots that surface pricing variations, availability patterns and location-based trends."
)

type Data struct {
	ImagePath string
}

func Page(data Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="grid gap-8 md:grid-cols-2"><div class="space-y-6">`); err != nil {
			return err
		}
		for _, item := range []struct{ label, text string }{
			{"Domain", domainText},
			{"Technologies used", technologiesText},
			{"Overview", overviewText},
		} {
			if _, err := io.WriteString(w, fmt.Sprintf(`<h2 class="text-2xl font-semibold"><span style="color:var(--theme-accent)">%s</span> : %s</h2>`, item.label, item.text)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div><div>`); err != nil {
			return err
		}
		if data.ImagePath != "" {
			if _, err := io.WriteString(w, fmt.Sprintf(`<img src="%s" alt="Airbnb" width="600" height="400" class="rounded-lg shadow-sm"/>`, html.EscapeString(data.ImagePath))); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}
