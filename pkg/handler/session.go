package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/yumyai/protview/pkg/related"
	"github.com/yumyai/protview/pkg/source"
)

const SessionCookie = "protview_session"

// SessionStore keeps one selection tracker per browser session. Idle sessions expire after
// ttl; past capacity the least recently used one is dropped.
type SessionStore struct {
	src   source.Source
	limit int
	ttl   time.Duration
	cache *expirable.LRU[string, *related.Tracker]
}

func NewSessionStore(src source.Source, limit, capacity int, ttl time.Duration) *SessionStore {
	onEvict := func(_ string, t *related.Tracker) {
		t.Close()
	}
	return &SessionStore{
		src:   src,
		limit: limit,
		ttl:   ttl,
		cache: expirable.NewLRU[string, *related.Tracker](capacity, onEvict, ttl),
	}
}

// Get returns the tracker of the request's session, if it has a live one.
func (s *SessionStore) Get(r *http.Request) (*related.Tracker, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return nil, false
	}
	t, ok := s.cache.Get(cookie.Value)
	if ok {
		// Re-adding restarts the expiry clock.
		s.cache.Add(cookie.Value, t)
	}
	return t, ok
}

// GetOrCreate returns the session's tracker, starting a new session (and setting its cookie)
// when the request has none.
func (s *SessionStore) GetOrCreate(w http.ResponseWriter, r *http.Request) *related.Tracker {
	if t, ok := s.Get(r); ok {
		return t
	}

	id := uuid.NewString()
	t := related.NewTracker(s.src, s.limit)
	s.cache.Add(id, t)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return t
}

func (s *SessionStore) Len() int {
	return s.cache.Len()
}
