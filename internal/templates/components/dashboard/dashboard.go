// internal/templates/components/dashboard/dashboard.go
package dashboard

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

type Link struct {
	Label string
	URL   string
}

// Data describes the external BI dashboard page.
type Data struct {
	ImagePath string
	Caption   string
	Links     []Link
}

func Page(data Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildDashboardHTML(data))
		return err
	})
}

func buildDashboardHTML(data Data) string {
	var builder strings.Builder
	builder.WriteString(`<div class="flex flex-col items-center gap-6">`)
	if data.ImagePath != "" {
		caption := html.EscapeString(data.Caption)
		builder.WriteString(fmt.Sprintf(
			`<figure class="w-full"><img src="%s" alt="%s" class="mx-auto block w-full rounded-lg shadow-sm"/><figcaption class="mt-2 text-center text-sm text-muted-foreground">%s</figcaption></figure>`,
			html.EscapeString(data.ImagePath), caption, caption,
		))
	} else {
		builder.WriteString(`<div class="rounded border border-dashed border-border p-6 text-sm text-muted-foreground">No dashboard image configured.</div>`)
	}

	if len(data.Links) > 0 {
		builder.WriteString(`<ul class="space-y-2">`)
		for _, link := range data.Links {
			builder.WriteString(fmt.Sprintf(
				`<li><p class="font-semibold" style="color:var(--theme-primary)">%s</p><a href="%s" target="_blank" rel="noopener noreferrer" class="text-sm underline">%s</a></li>`,
				html.EscapeString(link.Label), html.EscapeString(link.URL), html.EscapeString(link.URL),
			))
		}
		builder.WriteString(`</ul>`)
	}
	builder.WriteString(`</div>`)
	return builder.String()
}
