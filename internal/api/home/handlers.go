// internal/api/home/handlers.go
package home

import (
	"net/http"

	"github.com/codr1/airbnbviz/internal/api/apiutil"
	hometempl "github.com/codr1/airbnbviz/internal/templates/components/home"
	"github.com/codr1/airbnbviz/internal/templates/components/nav"
	"github.com/codr1/airbnbviz/internal/templates/layouts"
)

var (
	site layouts.Site
	data hometempl.Data
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s layouts.Site, imagePath string) {
	site = s
	data = hometempl.Data{ImagePath: imagePath}
}

// HandleHomePage renders the landing page for GET /.
func HandleHomePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	apiutil.RenderPage(w, r, hometempl.Page(data), layouts.Page{Site: site, Title: "Home", Active: nav.Home})
}
