package checkout

import (
	"sync"

	"github.com/GIUSEPPESAN21/ecommerce-platform/internal/domain"
)

// SessionStore holds in-progress checkout sessions, one per user. Sessions
// are process-local and never written to the document store: an abandoned
// checkout costs nothing to forget.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.CheckoutSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.CheckoutSession)}
}

func (s *SessionStore) Get(userID string) (domain.CheckoutSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	return session, ok
}

func (s *SessionStore) Put(session domain.CheckoutSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.UserID] = session
}

func (s *SessionStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}
