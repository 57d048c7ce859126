// internal/api/nav/handlers.go
package nav

import (
	"net/http"

	"github.com/codr1/airbnbviz/internal/api/apiutil"
	"github.com/codr1/airbnbviz/internal/templates/components/nav"
)

// HandleMenu renders the page menu for GET /api/v1/nav/menu?active=<page>.
func HandleMenu(w http.ResponseWriter, r *http.Request) {
	active := r.URL.Query().Get("active")
	if active != "" && !nav.IsItem(active) {
		http.Error(w, "Unknown page", http.StatusBadRequest)
		return
	}
	apiutil.RenderHTMLComponent(r.Context(), w, nav.Menu(active), nil, "Failed to render nav menu", "Failed to render menu")
}
