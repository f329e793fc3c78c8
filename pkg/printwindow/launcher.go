// Package printwindow hands generated documents to the browser through
// short-lived URLs. A document lives only in memory until its window expires.
package printwindow

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/temple-api/pkg/cache"
)

// ErrPopupBlocked is returned when the document cannot be handed out. The
// caller decides how to tell the user; Launch never panics.
var ErrPopupBlocked = errors.New("printwindow: popup blocked")

// DefaultTTL is how long an opened window can be fetched.
const DefaultTTL = 5 * time.Minute

// Window is an opened print window.
type Window struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Launcher writes a document into a new window.
type Launcher interface {
	Launch(ctx context.Context, html string) (*Window, error)
}

// Config controls the window store.
type Config struct {
	// BaseURL prefixes window URLs, e.g. "/print".
	BaseURL string
	TTL     time.Duration
	// MaxOpen caps concurrently open windows. Zero disables launching.
	MaxOpen int
}

// Store is an in-memory Launcher whose windows are served by Open.
type Store struct {
	cfg   Config
	docs  *cache.TTLCache[uuid.UUID, string]
	now   func() time.Time
	newID func() uuid.UUID
}

// NewStore creates a window store.
func NewStore(cfg Config) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/print"
	}
	return &Store{
		cfg:   cfg,
		docs:  cache.NewTTLCache[uuid.UUID, string](),
		now:   time.Now,
		newID: uuid.New,
	}
}

// WithClock replaces the time source used for expiry. Used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	s.docs.WithClock(now)
	return s
}

// Launch stores html and returns the window that serves it. The document is
// fully written before Launch returns.
func (s *Store) Launch(ctx context.Context, html string) (*Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.cfg.MaxOpen <= 0 || html == "" {
		return nil, ErrPopupBlocked
	}
	id := s.newID()
	if !s.docs.SetIfBelow(id, html, s.cfg.TTL, s.cfg.MaxOpen) {
		return nil, ErrPopupBlocked
	}
	return &Window{
		ID:        id,
		URL:       s.cfg.BaseURL + "/" + id.String(),
		ExpiresAt: s.now().Add(s.cfg.TTL),
	}, nil
}

// Open returns the document written to window id.
func (s *Store) Open(id uuid.UUID) (string, bool) {
	return s.docs.Get(id)
}

// Close discards a window before it expires.
func (s *Store) Close(id uuid.UUID) {
	s.docs.Delete(id)
}

// OpenCount returns the number of live windows.
func (s *Store) OpenCount() int {
	return s.docs.Len()
}
