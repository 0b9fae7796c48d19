package auth

import (
	"sync"

	"github.com/google/uuid"
)

// TokenStore keeps issued session tokens in memory. It is constructed
// explicitly and passed to its consumers; tokens live until they are
// invalidated or the store is closed.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]uint
}

func NewTokenStore() *TokenStore {
	return &TokenStore{
		tokens: make(map[string]uint),
	}
}

// Issue creates an opaque token for the given user id.
func (s *TokenStore) Issue(userID uint) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()
	return token
}

// Resolve returns the user id a token was issued for.
func (s *TokenStore) Resolve(token string) (uint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.tokens[token]
	return userID, ok
}

func (s *TokenStore) IsValid(token string) bool {
	_, ok := s.Resolve(token)
	return ok
}

func (s *TokenStore) Invalidate(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// Close drops all issued tokens.
func (s *TokenStore) Close() {
	s.mu.Lock()
	s.tokens = make(map[string]uint)
	s.mu.Unlock()
}
