package main

import (
	"net/http"

	"github.com/yumyai/protview/pkg/handler"
	"github.com/yumyai/protview/pkg/middle"
)

func NewRouter(reg *handler.RegistryContext, metrics *middle.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Protein registry
	mux.HandleFunc("GET /protein/{$}", reg.FindProteins)
	mux.HandleFunc("POST /protein/{$}", reg.InsertProtein)
	mux.HandleFunc("GET /protein/stats", reg.Statistics)
	mux.HandleFunc("GET /protein/{entry}", reg.GetProtein)

	// Correlation store
	mux.HandleFunc("GET /api/proteins", reg.GetCorrelations)
	mux.HandleFunc("POST /api/proteins", reg.SaveCorrelations)

	mux.HandleFunc("GET /health", reg.Health)

	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}
	return mux
}
