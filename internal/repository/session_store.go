package repository

import (
	"sync"
	"time"

	"seatpick/internal/session"
)

// SessionStore keeps live sessions in memory. Sessions are never persisted;
// they live until explicitly deleted or until the TTL janitor purges them.
// The store lock only guards the map. Each session serializes its own
// commands with its internal lock.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	ttl      time.Duration
}

// NewSessionStore creates an empty store. ttl <= 0 disables expiry.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session.Session),
		ttl:      ttl,
	}
}

// Put registers a session under its ID.
func (st *SessionStore) Put(s *session.Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID()] = s
}

// Get returns the session with the given ID. Expired sessions are treated
// as missing and removed on the spot.
func (st *SessionStore) Get(id string) (*session.Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if st.expired(s) {
		st.mu.Lock()
		delete(st.sessions, id)
		st.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len reports how many sessions are currently held, expired or not.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// PurgeExpired drops every expired session and returns how many were
// removed. The janitor goroutine in main calls this periodically.
func (st *SessionStore) PurgeExpired() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if st.expired(s) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

func (st *SessionStore) expired(s *session.Session) bool {
	return st.ttl > 0 && time.Since(s.CreatedAt()) > st.ttl
}
