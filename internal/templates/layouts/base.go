// internal/templates/layouts/base.go
package layouts

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/codr1/airbnbviz/internal/models"
	"github.com/codr1/airbnbviz/internal/templates/components/nav"
)

const (
	htmxScriptURL   = "https://unpkg.com/htmx.org@1.9.12"
	plotlyScriptURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"
)

// Site carries the settings shared by every page.
type Site struct {
	AppName string
	Theme   models.Theme
}

// Page describes one full page render.
type Page struct {
	Site   Site
	Title  string
	Active string
}

// figureScript draws every element carrying a data-figure attribute, both on
// first load and after each HTMX swap.
const figureScript = `<script>
function renderFigures(root) {
  root.querySelectorAll('[data-figure]').forEach(function (el) {
    var figure = JSON.parse(el.getAttribute('data-figure'));
    Plotly.newPlot(el, figure.data, figure.layout, {responsive: true, displaylogo: false});
  });
}
htmx.onLoad(renderFigures);
</script>`

// Base wraps content in the document shell with the page menu.
func Base(content templ.Component, page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		appName := page.Site.AppName
		if appName == "" {
			appName = "Airbnb Analysis"
		}
		title := appName
		if page.Title != "" {
			title = page.Title + " | " + appName
		}

		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, fmt.Sprintf(`<title>%s</title>`, html.EscapeString(title))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, fmt.Sprintf(`<style>%s</style>`, getThemeCssVars(page.Site.Theme))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<link rel="stylesheet" href="/static/css/main.css"/>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, fmt.Sprintf(`<script src="%s"></script><script src="%s"></script>%s</head>`, htmxScriptURL, plotlyScriptURL, figureScript)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, fmt.Sprintf(`<body class="min-h-screen bg-background"><header class="border-b border-border"><div class="mx-auto flex max-w-7xl items-center justify-between px-4 py-3"><a href="/" class="text-lg font-semibold" style="color:var(--theme-primary)">%s</a>`, html.EscapeString(appName))); err != nil {
			return err
		}
		if err := nav.Menu(page.Active).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div></header><main id="main-content" class="mx-auto max-w-7xl px-4 py-6">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
