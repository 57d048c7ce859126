package apiutil

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/airbnbviz/internal/api/htmx"
	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/templates/layouts"
)

// RenderPage writes content wrapped in the base layout, or content alone for
// HTMX requests that swap the main area.
func RenderPage(w http.ResponseWriter, r *http.Request, content templ.Component, page layouts.Page) bool {
	component := content
	if !htmx.IsRequest(r) {
		component = layouts.Base(content, page)
	}
	return RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render "+page.Title+" page", "Failed to render page")
}

// RequireSnapshot returns the current dataset snapshot or writes a 503.
func RequireSnapshot(w http.ResponseWriter, r *http.Request, provider dataset.Provider) (*dataset.Snapshot, bool) {
	if provider == nil {
		log.Ctx(r.Context()).Error().Msg("Dataset provider not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	snapshot := provider.Snapshot()
	if snapshot == nil {
		log.Ctx(r.Context()).Error().Err(dataset.ErrNotLoaded).Msg("Dataset snapshot unavailable")
		http.Error(w, "Dataset not loaded", http.StatusServiceUnavailable)
		return nil, false
	}
	return snapshot, true
}
