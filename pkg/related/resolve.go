// Package related resolves the "related proteins" of a selected entry: its correlations are
// flattened into entries, each entry is fetched concurrently, and entries the source cannot
// find are dropped.
package related

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/model"
	"github.com/yumyai/protview/pkg/source"
)

// DefaultLimit bounds concurrent FetchByIdentifier calls when no limit is given.
const DefaultLimit = 8

// Resolve returns the proteins correlated with entry, in correlation order. An empty entry
// resolves to an empty list without touching the source.
func Resolve(ctx context.Context, src source.Source, entry string, limit int) []model.Protein {
	if entry == "" {
		return []model.Protein{}
	}

	ids := model.RelatedEntries(entry, src.FetchCorrelations(ctx, entry))
	out := Lookup(ctx, src, ids, limit)

	logger.Debug("Resolved related proteins",
		zap.String("entry", entry),
		zap.Int("correlated", len(ids)),
		zap.Int("found", len(out)),
	)
	return out
}

// Lookup fetches ids concurrently, at most limit at a time, and returns the proteins found in
// the order of ids.
func Lookup(ctx context.Context, src source.Source, ids []string, limit int) []model.Protein {
	if len(ids) == 0 {
		return []model.Protein{}
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	found := make([]model.Protein, len(ids))
	ok := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range ids {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			found[i], ok[i] = src.FetchByIdentifier(gctx, id)
			return nil
		})
	}
	// Workers never fail; fetch errors are already reported as not-found.
	_ = g.Wait()

	out := make([]model.Protein, 0, len(ids))
	for i := range ids {
		if ok[i] {
			out = append(out, found[i])
		}
	}
	return out
}

// Scores maps each entry correlated with source to its first listed Jaccard score.
func Scores(source string, correlations []model.Correlation) map[string]float64 {
	scores := make(map[string]float64)
	for _, c := range correlations {
		if c.Entry != source {
			continue
		}
		for _, s := range c.JaccardCorrelations {
			if _, seen := scores[s.Entry]; !seen {
				scores[s.Entry] = s.Jaccard
			}
		}
	}
	return scores
}
