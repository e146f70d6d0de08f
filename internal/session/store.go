// Package session keeps per-actor conversational state for multi-step
// admin flows. The store is an explicit dependency of the dispatch
// layer: created at startup, injected into handlers, and trivially
// replaceable in tests.
package session

import (
	"sync"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
)

// Store holds at most one session per actor. Entering a new flow
// replaces any prior session; flows never nest.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*domain.Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*domain.Session)}
}

// Get returns the actor's session, or nil if no flow is open.
func (s *Store) Get(actorID int64) *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[actorID]
}

// Put installs a session for the actor, replacing any previous one.
func (s *Store) Put(actorID int64, sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[actorID] = sess
}

// Clear discards the actor's session.
func (s *Store) Clear(actorID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, actorID)
}

// Active reports whether the actor has an open flow.
func (s *Store) Active(actorID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[actorID]
	return ok && sess.Flow != domain.FlowNone
}
