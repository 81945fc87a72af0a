package handler

// DI for all handlers and models alike.

import (
	"context"
	"time"

	"github.com/yumyai/protview/pkg/db"
	"github.com/yumyai/protview/pkg/middle"
	"github.com/yumyai/protview/pkg/model"
	"github.com/yumyai/protview/pkg/related"
	"github.com/yumyai/protview/pkg/source"
)

// AppContext serves the viewer.
type AppContext struct {
	Source      source.Source
	Sessions    *SessionStore
	Metrics     *middle.Metrics // optional
	Concurrency int
	// FixtureDir is served at /mock-*.json in mock mode.
	FixtureDir string
}

// RegistryContext serves the registry and correlation contracts from SQLite.
type RegistryContext struct {
	Repo       *db.Repository
	MinJaccard float64
}

func (app *AppContext) mode() string {
	return app.Source.Mode()
}

func (app *AppContext) lookup(ctx context.Context, ids []string) []model.Protein {
	return related.Lookup(ctx, app.Source, ids, app.Concurrency)
}

// relatedOf fetches the correlations of entry once and resolves them, keeping the scores.
func (app *AppContext) relatedOf(ctx context.Context, entry string) ([]model.Protein, map[string]float64) {
	start := time.Now()
	correlations := app.Source.FetchCorrelations(ctx, entry)
	proteins := app.lookup(ctx, model.RelatedEntries(entry, correlations))
	if app.Metrics != nil {
		app.Metrics.ObserveResolution(time.Since(start), len(proteins))
	}
	return proteins, related.Scores(entry, correlations)
}
