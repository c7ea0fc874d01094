package player

import (
	"sync"

	"go.uber.org/zap"
)

// Store is the single authoritative container for the player aggregate.
// Concurrent callers serialize through it; each transition reads a
// consistent snapshot and either commits the returned next snapshot or, on
// rejection, leaves the current one untouched.
type Store struct {
	mu     sync.Mutex
	cur    State
	logger *zap.Logger
}

// NewStore creates a Store holding initial.
func NewStore(initial State, logger *zap.Logger) *Store {
	initial.Normalize()
	return &Store{cur: initial.Clone(), logger: logger}
}

// Snapshot returns a deep copy of the current aggregate.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Clone()
}

// Apply runs fn on a deep copy of the current state. If fn succeeds its
// result becomes the new state; if it fails the state is unchanged. The
// returned State is the post-transition snapshot either way.
func (s *Store) Apply(fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.cur.Clone())
	if err != nil {
		return s.cur.Clone(), err
	}
	s.cur = next
	return next.Clone(), nil
}

// Replace swaps in a freshly loaded aggregate (save-slot load).
func (s *Store) Replace(st State) {
	st.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = st.Clone()
	if s.logger != nil {
		s.logger.Info("player state replaced", zap.String("name", st.Name))
	}
}
