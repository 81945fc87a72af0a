// Package source resolves where protein and correlation data come from: a static fixture or the
// registry and correlation services. Read operations are fail-soft: failures are logged and
// reported as empty results or not-found, never returned to the caller.
package source

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yumyai/protview/pkg/model"
)

type Source interface {
	// FetchAll returns every protein of the source, or an empty slice on failure.
	FetchAll(ctx context.Context) []model.Protein
	// FetchByIdentifier returns the protein whose entry is id.
	FetchByIdentifier(ctx context.Context, id string) (model.Protein, bool)
	// FetchCorrelations returns the correlations of id; all of them when id is "".
	FetchCorrelations(ctx context.Context, id string) []model.Correlation
	// Search applies the registry filters.
	Search(ctx context.Context, filter Filter) []model.Protein
	// SaveCorrelations persists correlations. Unlike reads, failures are returned.
	SaveCorrelations(ctx context.Context, correlations []model.Correlation) error
	// Mode names the variant ("mock" or "live").
	Mode() string
}

// Filter mirrors the registry's query parameters. Empty fields do not filter.
type Filter struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (f Filter) IsZero() bool {
	return f.Identifier == "" && f.Name == "" && f.Description == ""
}

const (
	ModeMock = "mock"
	ModeLive = "live"
)

type Options struct {
	MockMode       bool
	FixtureDir     string
	RegistryURL    string
	CorrelationURL string
	RequestTimeout time.Duration
	MaxRetries     uint64
}

// New picks the source variant once, at startup.
func New(opts Options) (Source, error) {
	if opts.MockMode {
		info, err := os.Stat(opts.FixtureDir)
		if err != nil {
			return nil, fmt.Errorf("fixture dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("fixture dir %q is not a directory", opts.FixtureDir)
		}
		return NewFixtureSource(os.DirFS(opts.FixtureDir)), nil
	}

	return NewRemoteSource(opts.RegistryURL, opts.CorrelationURL,
		WithTimeout(opts.RequestTimeout),
		WithMaxRetries(opts.MaxRetries),
	)
}

// Fixture file names inside the fixture directory.
const (
	ProteinsFixture     = "mock-proteins.json"
	CorrelationsFixture = "mock-correlations.json"
)
