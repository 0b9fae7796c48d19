package repository

import (
	"context"
	"sync"
	"time"

	"mediarate-backend/internal/models"
)

// MemoryUserRepository is a mutex-guarded in-memory UserRepository.
type MemoryUserRepository struct {
	mu         sync.RWMutex
	users      map[uint]models.User
	byUsername map[string]uint
	nextID     uint
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:      make(map[uint]models.User),
		byUsername: make(map[string]uint),
		nextID:     1,
	}
}

func (r *MemoryUserRepository) Save(_ context.Context, user *models.User) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return false
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	r.byUsername[user.Username] = user.ID
	return true
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id uint) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil
	}
	return &user
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil
	}
	user := r.users[id]
	return &user
}
