package repository

import (
	"context"
	"sync"
	"time"

	"mediarate-backend/internal/models"
)

// MemoryMediaRepository is a mutex-guarded in-memory MediaRepository used by
// tests and the memory storage driver. Values are copied on the way in and
// out so callers never alias stored state.
type MemoryMediaRepository struct {
	mu     sync.RWMutex
	media  map[uint]models.Media
	nextID uint
}

func NewMemoryMediaRepository() *MemoryMediaRepository {
	return &MemoryMediaRepository{
		media:  make(map[uint]models.Media),
		nextID: 1,
	}
}

func copyMedia(m models.Media) models.Media {
	c := m
	c.Genres = append([]string(nil), m.Genres...)
	if m.ReleaseYear != nil {
		year := *m.ReleaseYear
		c.ReleaseYear = &year
	}
	return c
}

func (r *MemoryMediaRepository) Save(_ context.Context, media *models.Media) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	media.ID = r.nextID
	r.nextID++
	media.CreatedAt = time.Now().UTC()
	media.UpdatedAt = media.CreatedAt
	r.media[media.ID] = copyMedia(*media)
	return true
}

func (r *MemoryMediaRepository) FindAll(_ context.Context) []models.Media {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Media, 0, len(r.media))
	for id := uint(1); id < r.nextID; id++ {
		if m, ok := r.media[id]; ok {
			all = append(all, copyMedia(m))
		}
	}
	return all
}

func (r *MemoryMediaRepository) FindByID(_ context.Context, id uint) *models.Media {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.media[id]
	if !ok {
		return nil
	}
	c := copyMedia(m)
	return &c
}

func (r *MemoryMediaRepository) Update(_ context.Context, media *models.Media) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.media[media.ID]
	if !ok {
		return false
	}
	updated := copyMedia(*media)
	updated.CreatedAt = existing.CreatedAt
	updated.CreatedByUserID = existing.CreatedByUserID
	updated.UpdatedAt = time.Now().UTC()
	r.media[media.ID] = updated
	return true
}

func (r *MemoryMediaRepository) Delete(_ context.Context, id uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.media[id]; !ok {
		return false
	}
	delete(r.media, id)
	return true
}
