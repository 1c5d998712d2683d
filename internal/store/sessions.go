package store

import (
	"errors"
	"sync"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/game"
)

// ErrSessionNotFound is returned when a code matches no live or persisted session
var ErrSessionNotFound = errors.New("session not found")

// SessionStore manages the live sessions in this process, keyed by join code
type SessionStore struct {
	sessions map[string]*game.Session
	mu       sync.RWMutex
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*game.Session),
	}
}

// Get retrieves a session by code
func (s *SessionStore) Get(code string) (*game.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[code]
	return session, exists
}

// Set stores a session
func (s *SessionStore) Set(code string, session *game.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[code] = session
}

// Delete removes a session
func (s *SessionStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, code)
}

// Exists checks if a session code is taken
func (s *SessionStore) Exists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.sessions[code]
	return exists
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// UniqueCode generates a session code not currently in use
func (s *SessionStore) UniqueCode() string {
	for {
		code := game.GenerateSessionCode()
		if !s.Exists(code) {
			return code
		}
	}
}
