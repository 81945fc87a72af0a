package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/model"
	"go.uber.org/zap"
)

// FixtureSource serves the mock fixtures. Files are re-read on every call, the way a page
// would fetch them from its own origin.
type FixtureSource struct {
	fsys fs.FS
}

func NewFixtureSource(fsys fs.FS) *FixtureSource {
	return &FixtureSource{fsys: fsys}
}

func (s *FixtureSource) Mode() string {
	return ModeMock
}

func (s *FixtureSource) readJSON(name string, out any) error {
	raw, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *FixtureSource) FetchAll(ctx context.Context) []model.Protein {
	var proteins []model.Protein
	if err := s.readJSON(ProteinsFixture, &proteins); err != nil {
		logger.Error("Error fetching proteins", zap.String("mode", ModeMock), zap.Error(err))
		return []model.Protein{}
	}
	if proteins == nil {
		return []model.Protein{}
	}
	return proteins
}

// FetchByIdentifier scans FetchAll linearly.
func (s *FixtureSource) FetchByIdentifier(ctx context.Context, id string) (model.Protein, bool) {
	for _, p := range s.FetchAll(ctx) {
		if p.Entry == id {
			return p, true
		}
	}
	return model.Protein{}, false
}

func (s *FixtureSource) FetchCorrelations(ctx context.Context, id string) []model.Correlation {
	var all []model.Correlation
	if err := s.readJSON(CorrelationsFixture, &all); err != nil {
		logger.Error("Error fetching correlations", zap.String("mode", ModeMock), zap.Error(err))
		return []model.Correlation{}
	}
	if id == "" {
		if all == nil {
			return []model.Correlation{}
		}
		return all
	}

	out := make([]model.Correlation, 0, 1)
	for _, c := range all {
		if c.Entry == id {
			out = append(out, c)
		}
	}
	return out
}

// Search matches identifier exactly, name against the protein and entry names, and
// description against the protein name and organism. Text matches ignore case.
func (s *FixtureSource) Search(ctx context.Context, filter Filter) []model.Protein {
	all := s.FetchAll(ctx)
	if filter.IsZero() {
		return all
	}

	name := strings.ToLower(filter.Name)
	desc := strings.ToLower(filter.Description)

	out := make([]model.Protein, 0)
	for _, p := range all {
		if filter.Identifier != "" && p.Entry != filter.Identifier {
			continue
		}
		if name != "" &&
			!strings.Contains(strings.ToLower(p.ProteinName), name) &&
			!strings.Contains(strings.ToLower(p.EntryName), name) {
			continue
		}
		if desc != "" &&
			!strings.Contains(strings.ToLower(p.ProteinName), desc) &&
			!strings.Contains(strings.ToLower(p.Organism), desc) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SaveCorrelations accepts and drops the payload; the fixture is read-only.
func (s *FixtureSource) SaveCorrelations(ctx context.Context, correlations []model.Correlation) error {
	logger.Debug("Mock mode, correlations not persisted", zap.Int("count", len(correlations)))
	return nil
}
