// Package session keeps the in-memory quoting sessions. Each session owns one
// parts.Collection and serializes the actions applied to it.
package session

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/partquote/internal/ids"
	"github.com/Simplici0/partquote/internal/parts"
)

var ErrNotFound = errors.New("session not found")

// Session is one user's in-progress quote.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	parts    parts.Collection
	lastSeen time.Time
	now      func() time.Time
}

// Collection returns the current collection. The value is immutable, so the
// caller may read it without holding the lock.
func (s *Session) Collection() parts.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
	return s.parts
}

// Apply runs one user action against the collection. When fn fails the
// collection is left unchanged.
func (s *Session) Apply(fn func(parts.Collection) (parts.Collection, error)) (parts.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()

	next, err := fn(s.parts)
	if err != nil {
		return s.parts, err
	}
	s.parts = next
	return next, nil
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Manager maps session ids to sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	log   *zap.Logger
	now   func() time.Time
	newID func() string
	// partID issues part ids for new collections; nil uses random ids.
	partID func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDs overrides the session and part id generators.
func WithIDs(session, part func() string) Option {
	return func(m *Manager) {
		if session != nil {
			m.newID = session
		}
		m.partID = part
	}
}

// NewManager creates an empty registry. A nil logger discards output.
func NewManager(log *zap.Logger, opts ...Option) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		sessions: make(map[string]*Session),
		log:      log,
		now:      time.Now,
		newID:    ids.NewSessionID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session with an empty collection.
func (m *Manager) Create() *Session {
	now := m.now()
	s := &Session{
		ID:        m.newID(),
		CreatedAt: now,
		parts:     parts.NewCollection(m.partID),
		lastSeen:  now,
		now:       m.now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	total := len(m.sessions)
	m.mu.Unlock()

	m.log.Debug("session created", zap.String("session_id", s.ID), zap.Int("total", total))
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete drops a session. Deleting an unknown id is a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many
// were removed.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.log.Info("expired idle sessions", zap.Int("removed", removed), zap.Int("remaining", len(m.sessions)))
	}
	return removed
}
