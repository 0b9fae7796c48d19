package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"mediarate-backend/internal/models"
)

// MemoryRatingRepository is a mutex-guarded in-memory RatingRepository.
// It enforces the same uniqueness rules as the Postgres unique indexes:
// one rating per (media, user), one like per (rating, user).
type MemoryRatingRepository struct {
	mu      sync.RWMutex
	ratings map[uint]models.Rating
	likes   map[uint]map[uint]bool
	byPair  map[[2]uint]uint
	nextID  uint
}

func NewMemoryRatingRepository() *MemoryRatingRepository {
	return &MemoryRatingRepository{
		ratings: make(map[uint]models.Rating),
		likes:   make(map[uint]map[uint]bool),
		byPair:  make(map[[2]uint]uint),
		nextID:  1,
	}
}

func (r *MemoryRatingRepository) copyRating(rating models.Rating) models.Rating {
	c := rating
	c.LikedByUserIDs = nil
	for userID := range r.likes[rating.ID] {
		c.LikedByUserIDs = append(c.LikedByUserIDs, userID)
	}
	sort.Slice(c.LikedByUserIDs, func(i, j int) bool { return c.LikedByUserIDs[i] < c.LikedByUserIDs[j] })
	return c
}

func (r *MemoryRatingRepository) Save(_ context.Context, rating *models.Rating) *models.Rating {
	r.mu.Lock()
	defer r.mu.Unlock()

	pair := [2]uint{rating.MediaID, rating.UserID}
	if _, exists := r.byPair[pair]; exists {
		return nil
	}

	rating.ID = r.nextID
	r.nextID++
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now().UTC()
	}
	stored := *rating
	stored.LikedByUserIDs = nil
	r.ratings[rating.ID] = stored
	r.byPair[pair] = rating.ID

	saved := r.copyRating(stored)
	return &saved
}

func (r *MemoryRatingRepository) Update(_ context.Context, rating *models.Rating) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.ratings[rating.ID]
	if !ok {
		return false
	}
	existing.StarValue = rating.StarValue
	existing.Comment = rating.Comment
	existing.CommentConfirmed = rating.CommentConfirmed
	r.ratings[rating.ID] = existing
	return true
}

func (r *MemoryRatingRepository) Delete(_ context.Context, id uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.ratings[id]
	if !ok {
		return false
	}
	delete(r.ratings, id)
	delete(r.likes, id)
	delete(r.byPair, [2]uint{existing.MediaID, existing.UserID})
	return true
}

func (r *MemoryRatingRepository) FindByID(_ context.Context, id uint) *models.Rating {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rating, ok := r.ratings[id]
	if !ok {
		return nil
	}
	c := r.copyRating(rating)
	return &c
}

func (r *MemoryRatingRepository) FindByMediaAndUser(_ context.Context, mediaID, userID uint) *models.Rating {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPair[[2]uint{mediaID, userID}]
	if !ok {
		return nil
	}
	c := r.copyRating(r.ratings[id])
	return &c
}

func (r *MemoryRatingRepository) FindByMediaID(_ context.Context, mediaID uint) []models.Rating {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Rating
	for id := uint(1); id < r.nextID; id++ {
		if rating, ok := r.ratings[id]; ok && rating.MediaID == mediaID {
			result = append(result, r.copyRating(rating))
		}
	}
	return result
}

func (r *MemoryRatingRepository) FindByUserID(_ context.Context, userID uint) []models.Rating {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Rating
	for id := uint(1); id < r.nextID; id++ {
		if rating, ok := r.ratings[id]; ok && rating.UserID == userID {
			result = append(result, r.copyRating(rating))
		}
	}
	return result
}

func (r *MemoryRatingRepository) SummarizeByMediaIDs(_ context.Context, ids []uint) []models.RatingSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	sums := make(map[uint]int)
	counts := make(map[uint]int)
	for _, rating := range r.ratings {
		if wanted[rating.MediaID] {
			sums[rating.MediaID] += rating.StarValue
			counts[rating.MediaID]++
		}
	}

	var summaries []models.RatingSummary
	for _, id := range ids {
		if counts[id] == 0 {
			continue
		}
		summaries = append(summaries, models.RatingSummary{
			MediaID:      id,
			AverageScore: float64(sums[id]) / float64(counts[id]),
			RatingCount:  counts[id],
		})
	}
	return summaries
}

func (r *MemoryRatingRepository) RatingCountsPerUser(_ context.Context, limit int) []models.UserRatingCount {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[uint]int)
	for _, rating := range r.ratings {
		counts[rating.UserID]++
	}

	result := make([]models.UserRatingCount, 0, len(counts))
	for userID, count := range counts {
		result = append(result, models.UserRatingCount{UserID: userID, RatingCount: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RatingCount != result[j].RatingCount {
			return result[i].RatingCount > result[j].RatingCount
		}
		return result[i].UserID < result[j].UserID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (r *MemoryRatingRepository) ConfirmComment(_ context.Context, ratingID uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rating, ok := r.ratings[ratingID]
	if !ok {
		return false
	}
	rating.CommentConfirmed = true
	r.ratings[ratingID] = rating
	return true
}

func (r *MemoryRatingRepository) AddLike(_ context.Context, ratingID, userID uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ratings[ratingID]; !ok {
		return false
	}
	if r.likes[ratingID] == nil {
		r.likes[ratingID] = make(map[uint]bool)
	}
	if r.likes[ratingID][userID] {
		return false
	}
	r.likes[ratingID][userID] = true
	return true
}

func (r *MemoryRatingRepository) RemoveLike(_ context.Context, ratingID, userID uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.likes[ratingID][userID] {
		return false
	}
	delete(r.likes[ratingID], userID)
	return true
}

func (r *MemoryRatingRepository) FindLikes(_ context.Context, ratingID uint) []uint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var userIDs []uint
	for userID := range r.likes[ratingID] {
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })
	return userIDs
}
