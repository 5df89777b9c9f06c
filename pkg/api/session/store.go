// Package session keeps the in-memory working models of connected editors.
// Each session owns one assumption model; generation never mutates it.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"finmodeler/pkg/core/model"
)

// Session is one editor's working copy.
type Session struct {
	ID      string       `json:"session_id"`
	Model   *model.Model `json:"model"`
	Created time.Time    `json:"created"`
	Updated time.Time    `json:"updated"`
}

// Store is a concurrency-safe session map.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create opens a session seeded with the example model.
func (s *Store) Create() *Session {
	now := time.Now()
	sess := &Session{
		ID:      uuid.NewString(),
		Model:   model.Example(),
		Created: now,
		Updated: now,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session by id.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	return sess, ok
}

// Update replaces a session's model. The model must already be validated.
func (s *Store) Update(id string, m *model.Model) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Model = m
	sess.Updated = time.Now()
	return true
}

// Delete closes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of open sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
