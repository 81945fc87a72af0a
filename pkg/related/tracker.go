package related

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/model"
	"github.com/yumyai/protview/pkg/source"
)

// State is the lifecycle of a selection.
type State string

const (
	StateIdle      State = "idle"
	StateResolving State = "resolving"
	StateResolved  State = "resolved"
)

// Snapshot is a copy of the tracker's current selection.
type Snapshot struct {
	State      State           `json:"state"`
	Entry      string          `json:"entry"`
	Related    []model.Protein `json:"related"`
	Generation uint64          `json:"generation"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Tracker holds the related proteins of the latest selection. Every Select bumps a generation
// counter, and a resolution only lands if its generation is still the current one, so a slow
// answer for an old selection never overwrites a newer one.
type Tracker struct {
	src   source.Source
	limit int

	mu        sync.Mutex
	gen       uint64
	state     State
	entry     string
	related   []model.Protein
	updatedAt time.Time
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewTracker(src source.Source, limit int) *Tracker {
	return &Tracker{
		src:       src,
		limit:     limit,
		state:     StateIdle,
		related:   []model.Protein{},
		updatedAt: time.Now(),
		done:      closedChan(),
	}
}

func closedChan() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}

// Select starts resolving entry and returns its generation. The previous generation, if still
// running, is cancelled. Selecting "" clears the selection without calling the source.
// Resolution runs under ctx; callers that return before it finishes should pass a context that
// outlives them.
func (t *Tracker) Select(ctx context.Context, entry string) uint64 {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
	gen := t.gen
	t.entry = entry
	t.related = []model.Protein{}
	t.updatedAt = time.Now()

	if entry == "" {
		t.state = StateIdle
		t.done = closedChan()
		t.mu.Unlock()
		return gen
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.state = StateResolving
	t.cancel = cancel
	t.done = done
	t.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()
		t.complete(gen, entry, Resolve(runCtx, t.src, entry, t.limit))
	}()
	return gen
}

// complete applies a finished resolution if gen is still current.
func (t *Tracker) complete(gen uint64, entry string, related []model.Protein) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen {
		logger.Debug("Discarding stale resolution",
			zap.String("entry", entry),
			zap.Uint64("generation", gen),
			zap.Uint64("current", t.gen),
		)
		return false
	}
	t.state = StateResolved
	t.related = related
	t.updatedAt = time.Now()
	t.cancel = nil
	return true
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() Snapshot {
	related := make([]model.Protein, len(t.related))
	copy(related, t.related)
	return Snapshot{
		State:      t.state,
		Entry:      t.entry,
		Related:    related,
		Generation: t.gen,
		UpdatedAt:  t.updatedAt,
	}
}

// Wait blocks until the current selection is no longer resolving. A selection made while
// waiting is waited for too.
func (t *Tracker) Wait(ctx context.Context) (Snapshot, error) {
	for {
		t.mu.Lock()
		done, gen := t.done, t.gen
		t.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return t.Snapshot(), ctx.Err()
		}

		t.mu.Lock()
		if gen == t.gen {
			snap := t.snapshotLocked()
			t.mu.Unlock()
			return snap, nil
		}
		t.mu.Unlock()
	}
}

// Close cancels any running resolution.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
