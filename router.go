package main

import (
	"mime"
	"net/http"

	"github.com/yumyai/protview/pkg/handler"
	"github.com/yumyai/protview/pkg/source"
)

const staticDir = "./static/"

func NewRouter(app *handler.AppContext) *http.ServeMux {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// Main routes
	mux.HandleFunc("GET /{$}", app.ProteinListPage)
	mux.HandleFunc("GET /protein/{entry}", app.ProteinPage)
	mux.HandleFunc("GET /graph/{entry}", app.GraphPage)

	// API routes
	mux.HandleFunc("GET /api/v1/health", app.Health)
	mux.HandleFunc("GET /api/v1/proteins", app.ListProteinsAPI)
	mux.HandleFunc("GET /api/v1/proteins/{entry}", app.GetProteinAPI)
	mux.HandleFunc("GET /api/v1/proteins/{entry}/related", app.RelatedProteinsAPI)
	mux.HandleFunc("GET /api/v1/proteins/{entry}/graph", app.GraphAPI)
	mux.HandleFunc("GET /api/v1/selection", app.SelectionAPI)
	mux.HandleFunc("POST /api/v1/selection", app.SelectAPI)

	// Get sequences
	mux.HandleFunc("GET /sequence/by-entry", app.GetSequenceByEntryHandler)

	// Fixtures, as the browser would fetch them in mock mode
	if app.Source.Mode() == source.ModeMock {
		mux.HandleFunc("GET /"+source.ProteinsFixture, app.FixtureFile(source.ProteinsFixture))
		mux.HandleFunc("GET /"+source.CorrelationsFixture, app.FixtureFile(source.CorrelationsFixture))
	}

	if app.Metrics != nil {
		mux.Handle("GET /metrics", app.Metrics.Handler())
	}

	// Static files
	setupStaticFiles(mux)

	return mux
}

// Manually add static for all route that use this
func setupStaticFiles(mux *http.ServeMux) {
	_ = mime.AddExtensionType(".js", "text/javascript")
	_ = mime.AddExtensionType(".css", "text/css")
	fs := http.FileServer(http.Dir(staticDir))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
}
