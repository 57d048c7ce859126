// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/airbnbviz/internal/api"
	aggregateapi "github.com/codr1/airbnbviz/internal/api/aggregate"
	"github.com/codr1/airbnbviz/internal/api/dashboard"
	"github.com/codr1/airbnbviz/internal/api/explore"
	"github.com/codr1/airbnbviz/internal/api/home"
	"github.com/codr1/airbnbviz/internal/api/nav"
	"github.com/codr1/airbnbviz/internal/api/overview"
	"github.com/codr1/airbnbviz/internal/config"
	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/ratelimit"
	"github.com/codr1/airbnbviz/internal/templates/layouts"
)

func newServer(cfg *config.Config, holder *dataset.Holder, previewer dataset.RecordPreviewer, limiter *ratelimit.Limiter) *http.Server {
	router := http.NewServeMux()

	// Innermost first: logging sees the request id, the limiter logs with it.
	handler := api.ChainMiddleware(
		router,
		limiter.Middleware,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	site := layouts.Site{AppName: cfg.App.Name, Theme: cfg.Theme}
	home.InitHandlers(site, cfg.App.HomeImagePath)
	overview.InitHandlers(holder, previewer, site)
	explore.InitHandlers(holder, site)
	dashboard.InitHandlers(site, cfg.Dashboard)
	aggregateapi.InitHandlers(holder)

	registerRoutes(router, cfg.App.StaticDir, holder)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, staticDir string, holder *dataset.Holder) {
	mux.HandleFunc("GET /", home.HandleHomePage)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if holder.Snapshot() == nil {
			http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Navigation
	mux.HandleFunc("GET /api/v1/nav/menu", nav.HandleMenu)

	// Overview
	mux.HandleFunc("GET /overview", overview.HandleOverviewPage)
	mux.HandleFunc("GET /api/v1/overview/data", overview.HandleOverviewData)
	mux.HandleFunc("GET /api/v1/overview/insights", overview.HandleOverviewInsights)

	// Explore
	mux.HandleFunc("GET /explore", explore.HandleExplorePage)
	mux.HandleFunc("GET /api/v1/explore/charts", explore.HandleExploreCharts)

	// External dashboard
	mux.HandleFunc("GET /dashboard", dashboard.HandleDashboardPage)

	mux.HandleFunc("GET /api/v1/aggregate", aggregateapi.HandleAggregate)

	fs := http.FileServer(http.Dir(staticDir))
	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Ctx(r.Context()).Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
