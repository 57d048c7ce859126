// internal/api/explore/handlers.go
package explore

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/airbnbviz/internal/api/apiutil"
	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/insights"
	"github.com/codr1/airbnbviz/internal/models"
	"github.com/codr1/airbnbviz/internal/request"
	exploretempl "github.com/codr1/airbnbviz/internal/templates/components/explore"
	"github.com/codr1/airbnbviz/internal/templates/components/nav"
	"github.com/codr1/airbnbviz/internal/templates/components/widgets"
	"github.com/codr1/airbnbviz/internal/templates/layouts"
)

const chartsPath = "/api/v1/explore/charts"

var (
	provider dataset.Provider
	site     layouts.Site
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(p dataset.Provider, s layouts.Site) {
	provider = p
	site = s
}

// HandleExplorePage renders GET /explore with the filter widgets.
func HandleExplorePage(w http.ResponseWriter, r *http.Request) {
	snapshot, selection, charts, ok := buildCharts(w, r)
	if !ok {
		return
	}
	form := widgets.FilterForm{
		Endpoint:  chartsPath,
		Target:    exploretempl.ChartsTarget,
		Options:   snapshot.Options(),
		Selection: selection,
	}
	apiutil.RenderPage(w, r, exploretempl.Page(form, charts), layouts.Page{Site: site, Title: "Explore", Active: nav.Explore})
}

// HandleExploreCharts renders the price and availability charts partial.
func HandleExploreCharts(w http.ResponseWriter, r *http.Request) {
	_, _, charts, ok := buildCharts(w, r)
	if !ok {
		return
	}
	apiutil.RenderHTMLComponent(r.Context(), w, exploretempl.Charts(charts), nil, "Failed to render explore charts", "Failed to render charts")
}

func buildCharts(w http.ResponseWriter, r *http.Request) (*dataset.Snapshot, models.FilterSelection, []insights.Chart, bool) {
	snapshot, ok := apiutil.RequireSnapshot(w, r, provider)
	if !ok {
		return nil, models.FilterSelection{}, nil, false
	}
	selection, ok := request.SelectionFromRequest(w, r, snapshot.Options())
	if !ok {
		return nil, models.FilterSelection{}, nil, false
	}

	charts, err := insights.Explore(r.Context(), snapshot.Listings(), selection)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to build explore charts")
		http.Error(w, "Failed to build charts", http.StatusInternalServerError)
		return nil, models.FilterSelection{}, nil, false
	}
	return snapshot, selection, charts, true
}
