// internal/api/overview/handlers.go
package overview

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/airbnbviz/internal/api/apiutil"
	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/insights"
	"github.com/codr1/airbnbviz/internal/request"
	"github.com/codr1/airbnbviz/internal/templates/components/nav"
	overviewtempl "github.com/codr1/airbnbviz/internal/templates/components/overview"
	"github.com/codr1/airbnbviz/internal/templates/components/widgets"
	"github.com/codr1/airbnbviz/internal/templates/layouts"
)

const (
	previewTimeout = 5 * time.Second
	rowsPerPage    = 50
	insightsPath   = "/api/v1/overview/insights"
)

var (
	provider  dataset.Provider
	previewer dataset.RecordPreviewer
	site      layouts.Site
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(p dataset.Provider, rp dataset.RecordPreviewer, s layouts.Site) {
	provider = p
	previewer = rp
	if previewer == nil {
		previewer = dataset.DisabledPreviewer{}
	}
	site = s
}

// HandleOverviewPage renders GET /overview?tab=raw|insights.
func HandleOverviewPage(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := apiutil.RequireSnapshot(w, r, provider)
	if !ok {
		return
	}

	var body templ.Component
	tab := r.URL.Query().Get("tab")
	switch tab {
	case "", overviewtempl.TabRaw:
		tab = overviewtempl.TabRaw
		body = overviewtempl.RawTab(overviewtempl.ViewRaw, rawRecordComponent(r.Context()))
	case overviewtempl.TabInsights:
		selection, ok := request.SelectionFromRequest(w, r, snapshot.Options())
		if !ok {
			return
		}
		charts, err := insights.Overview(r.Context(), snapshot.Listings(), selection)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to build overview charts")
			http.Error(w, "Failed to build charts", http.StatusInternalServerError)
			return
		}
		form := widgets.FilterForm{
			Endpoint:  insightsPath,
			Target:    overviewtempl.ChartsTarget,
			Options:   snapshot.Options(),
			Selection: selection,
		}
		body = overviewtempl.InsightsTab(form, charts)
	default:
		http.Error(w, "Unknown tab", http.StatusBadRequest)
		return
	}

	apiutil.RenderPage(w, r, overviewtempl.Page(tab, body), layouts.Page{Site: site, Title: "Overview", Active: nav.Overview})
}

// HandleOverviewData renders the raw tab panel for
// GET /api/v1/overview/data?view=raw|dataframe&page=N.
func HandleOverviewData(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	switch query.Get("view") {
	case "", overviewtempl.ViewRaw:
		apiutil.RenderHTMLComponent(r.Context(), w, rawRecordComponent(r.Context()), nil, "Failed to render raw record", "Failed to render raw record")
	case overviewtempl.ViewDataframe:
		snapshot, ok := apiutil.RequireSnapshot(w, r, provider)
		if !ok {
			return
		}
		table := pageOf(snapshot, request.ParsePage(query.Get("page")))
		apiutil.RenderHTMLComponent(r.Context(), w, overviewtempl.Dataframe(table), nil, "Failed to render dataframe", "Failed to render dataframe")
	default:
		http.Error(w, "Unknown view", http.StatusBadRequest)
	}
}

// HandleOverviewInsights renders the Overview charts partial for the
// filter selection in the query.
func HandleOverviewInsights(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := apiutil.RequireSnapshot(w, r, provider)
	if !ok {
		return
	}
	selection, ok := request.SelectionFromRequest(w, r, snapshot.Options())
	if !ok {
		return
	}

	charts, err := insights.Overview(r.Context(), snapshot.Listings(), selection)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to build overview charts")
		http.Error(w, "Failed to build charts", http.StatusInternalServerError)
		return
	}
	apiutil.RenderHTMLComponent(r.Context(), w, overviewtempl.Charts(charts), nil, "Failed to render overview charts", "Failed to render charts")
}

func rawRecordComponent(ctx context.Context) templ.Component {
	logger := log.Ctx(ctx)
	previewCtx, cancel := context.WithTimeout(ctx, previewTimeout)
	defer cancel()

	document, err := previewer.PreviewRecord(previewCtx)
	switch {
	case err == nil:
		return overviewtempl.RawRecord(document, "")
	case errors.Is(err, dataset.ErrPreviewNotEnabled):
		return overviewtempl.RawRecord("", "Raw document preview is not configured.")
	case errors.Is(err, dataset.ErrNoRecords):
		return overviewtempl.RawRecord("", "No records found in the collection.")
	default:
		logger.Error().Err(err).Msg("Failed to load raw record")
		return overviewtempl.RawRecord("", "Failed to load raw record.")
	}
}

// pageOf slices one page of every loaded row, clamping page to the last page.
func pageOf(snapshot *dataset.Snapshot, page int) overviewtempl.Table {
	rows := snapshot.All()
	pages := (len(rows) + rowsPerPage - 1) / rowsPerPage
	if pages == 0 {
		pages = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * rowsPerPage
	end := start + rowsPerPage
	if end > len(rows) {
		end = len(rows)
	}
	return overviewtempl.Table{
		Rows:       rows[start:end],
		Page:       page,
		Pages:      pages,
		TotalRows:  len(rows),
		FirstIndex: start,
	}
}
