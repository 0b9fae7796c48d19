package repository

import (
	"context"
	"sort"
	"sync"
)

type favoriteKey struct {
	userID  uint
	mediaID uint
}

// MemoryFavoriteRepository is a mutex-guarded in-memory FavoriteRepository.
// Insertion order stands in for the marked-at timestamp, so MediaIDsByUser
// returns the most recently marked media first.
type MemoryFavoriteRepository struct {
	mu      sync.RWMutex
	order   map[favoriteKey]uint64
	nextSeq uint64
}

func NewMemoryFavoriteRepository() *MemoryFavoriteRepository {
	return &MemoryFavoriteRepository{
		order:   make(map[favoriteKey]uint64),
		nextSeq: 1,
	}
}

func (r *MemoryFavoriteRepository) AddFavorite(_ context.Context, userID, mediaID uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{userID: userID, mediaID: mediaID}
	if _, exists := r.order[key]; exists {
		return false
	}
	r.order[key] = r.nextSeq
	r.nextSeq++
	return true
}

func (r *MemoryFavoriteRepository) RemoveFavorite(_ context.Context, userID, mediaID uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{userID: userID, mediaID: mediaID}
	if _, exists := r.order[key]; !exists {
		return false
	}
	delete(r.order, key)
	return true
}

func (r *MemoryFavoriteRepository) IsFavorite(_ context.Context, userID, mediaID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.order[favoriteKey{userID: userID, mediaID: mediaID}]
	return exists
}

func (r *MemoryFavoriteRepository) MediaIDsByUser(_ context.Context, userID uint) []uint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type entry struct {
		mediaID uint
		seq     uint64
	}
	var entries []entry
	for key, seq := range r.order {
		if key.userID == userID {
			entries = append(entries, entry{mediaID: key.mediaID, seq: seq})
		}
	}
	// Most recent first.
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })
	mediaIDs := make([]uint, 0, len(entries))
	for _, e := range entries {
		mediaIDs = append(mediaIDs, e.mediaID)
	}
	return mediaIDs
}

func (r *MemoryFavoriteRepository) CountFavoritesForMedia(_ context.Context, mediaID uint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for key := range r.order {
		if key.mediaID == mediaID {
			count++
		}
	}
	return count
}
