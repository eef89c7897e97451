// Package session holds the last aggregation result per session id.
// State lives in process memory only and is reset on restart; a new
// run replaces the prior collection wholesale, so readers holding the
// old snapshot stay valid until they drop it.
package session

import (
	"sync"
	"time"

	"github.com/dongbanlab/newswatch/internal/domain"
)

// Snapshot is one session's view of the latest run.
type Snapshot struct {
	Collection *domain.Collection
	RanAt      time.Time
}

// Store keeps per-session snapshots behind a lock. The swap is atomic
// from a reader's perspective: Get returns either the previous
// complete collection or the new one, never a partial build.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Snapshot
	now      func() time.Time
}

// NewStore builds an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]Snapshot),
		now:      time.Now,
	}
}

// Put replaces the session's snapshot with the given collection.
func (s *Store) Put(sessionID string, c *domain.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = Snapshot{Collection: c, RanAt: s.now()}
}

// Get returns the session's latest snapshot, if any.
func (s *Store) Get(sessionID string) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.sessions[sessionID]
	return snap, ok
}

// Clear drops the session's snapshot, ending the session.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len reports how many sessions currently hold a snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
