// internal/templates/components/nav/nav.go
package nav

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const (
	Home      = "home"
	Overview  = "overview"
	Explore   = "explore"
	Dashboard = "dashboard"
)

type Item struct {
	Key   string
	Label string
	Path  string
}

// Items is the horizontal page menu in display order.
var Items = []Item{
	{Key: Home, Label: "Home", Path: "/"},
	{Key: Overview, Label: "Overview", Path: "/overview"},
	{Key: Explore, Label: "Explore", Path: "/explore"},
	{Key: Dashboard, Label: "Dashboard", Path: "/dashboard"},
}

// IsItem reports whether key names a menu entry.
func IsItem(key string) bool {
	for _, item := range Items {
		if item.Key == key {
			return true
		}
	}
	return false
}

// Menu renders the page menu with active highlighted. Each link swaps the
// main content and then reloads the menu so the highlight follows.
func Menu(active string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildMenuHTML(active))
		return err
	})
}

func buildMenuHTML(active string) string {
	var builder strings.Builder
	builder.WriteString(`<nav id="nav-menu" class="flex items-center gap-1" hx-target="#main-content" hx-push-url="true">`)
	for _, item := range Items {
		class := "rounded-md px-3 py-2 text-sm font-medium text-foreground hover:bg-muted"
		current := ""
		if item.Key == active {
			class = "rounded-md px-3 py-2 text-sm font-semibold text-white"
			current = ` aria-current="page" style="background:var(--theme-primary)"`
		}
		builder.WriteString(fmt.Sprintf(
			`<a href="%s" hx-get="%s" hx-on::after-request="htmx.ajax('GET','/api/v1/nav/menu?active=%s',{target:'#nav-menu',swap:'outerHTML'})" class="%s"%s>%s</a>`,
			item.Path, item.Path, item.Key, class, current, item.Label,
		))
	}
	builder.WriteString(`</nav>`)
	return builder.String()
}
