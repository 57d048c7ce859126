// internal/api/dashboard/handlers.go
package dashboard

import (
	"net/http"

	"github.com/codr1/airbnbviz/internal/api/apiutil"
	"github.com/codr1/airbnbviz/internal/config"
	dashboardtempl "github.com/codr1/airbnbviz/internal/templates/components/dashboard"
	"github.com/codr1/airbnbviz/internal/templates/components/nav"
	"github.com/codr1/airbnbviz/internal/templates/layouts"
)

var (
	site layouts.Site
	data dashboardtempl.Data
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s layouts.Site, cfg config.DashboardConfig) {
	site = s
	links := make([]dashboardtempl.Link, 0, len(cfg.Links))
	for _, link := range cfg.Links {
		links = append(links, dashboardtempl.Link{Label: link.Label, URL: link.URL})
	}
	caption := cfg.Caption
	if caption == "" {
		caption = "Power BI Dashboard"
	}
	data = dashboardtempl.Data{ImagePath: cfg.ImagePath, Caption: caption, Links: links}
}

// HandleDashboardPage renders the external dashboard page for GET /dashboard.
func HandleDashboardPage(w http.ResponseWriter, r *http.Request) {
	apiutil.RenderPage(w, r, dashboardtempl.Page(data), layouts.Page{Site: site, Title: "Dashboard", Active: nav.Dashboard})
}
