package services

import (
	"context"
	"strings"
	"time"

	"mediarate-backend/internal/models"
	"mediarate-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// RatingService governs the rating lifecycle: creation, ownership-gated
// edits, comment moderation, and likes. Rejections (validation failure,
// ownership mismatch, missing rows, duplicates) are ordinary nil/false
// outcomes, never errors.
type RatingService interface {
	CreateRating(ctx context.Context, rating *models.Rating) *models.Rating
	GetRatingsForMedia(ctx context.Context, mediaID uint) []models.Rating
	GetRatingByID(ctx context.Context, id uint) *models.Rating
	GetUserRatingForMedia(ctx context.Context, mediaID, userID uint) *models.Rating
	UpdateRating(ctx context.Context, rating *models.Rating, userID uint) bool
	DeleteRating(ctx context.Context, ratingID, userID uint) bool
	ConfirmComment(ctx context.Context, ratingID, userID uint) bool
	LikeRating(ctx context.Context, ratingID, userID uint) bool
	UnlikeRating(ctx context.Context, ratingID, userID uint) bool
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	mediaRepo  repository.MediaRepository
	logger     *logrus.Logger
}

func NewRatingService(ratingRepo repository.RatingRepository, mediaRepo repository.MediaRepository, logger *logrus.Logger) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		mediaRepo:  mediaRepo,
		logger:     logger,
	}
}

// CreateRating stores a first rating for a (media, user) pair. It rejects
// rather than upserts when a rating already exists; a concurrent duplicate
// that slips past the lookup is caught by the store's uniqueness guarantee.
func (s *ratingService) CreateRating(ctx context.Context, rating *models.Rating) *models.Rating {
	if !isCreatable(rating) {
		return nil
	}
	if s.mediaRepo.FindByID(ctx, rating.MediaID) == nil {
		return nil
	}
	if s.ratingRepo.FindByMediaAndUser(ctx, rating.MediaID, rating.UserID) != nil {
		return nil
	}

	rating.ID = 0
	rating.CommentConfirmed = false
	rating.CreatedAt = time.Now().UTC()
	rating.LikedByUserIDs = nil
	return s.ratingRepo.Save(ctx, rating)
}

func (s *ratingService) GetRatingsForMedia(ctx context.Context, mediaID uint) []models.Rating {
	if mediaID == 0 {
		return nil
	}
	return s.ratingRepo.FindByMediaID(ctx, mediaID)
}

func (s *ratingService) GetRatingByID(ctx context.Context, id uint) *models.Rating {
	if id == 0 {
		return nil
	}
	return s.ratingRepo.FindByID(ctx, id)
}

func (s *ratingService) GetUserRatingForMedia(ctx context.Context, mediaID, userID uint) *models.Rating {
	if mediaID == 0 || userID == 0 {
		return nil
	}
	return s.ratingRepo.FindByMediaAndUser(ctx, mediaID, userID)
}

// UpdateRating applies star and comment edits for the owning user. A change
// to the comment text resets the moderation flag; star-only edits keep it.
func (s *ratingService) UpdateRating(ctx context.Context, rating *models.Rating, userID uint) bool {
	if rating == nil || rating.ID == 0 || userID == 0 {
		return false
	}

	existing := s.ratingRepo.FindByID(ctx, rating.ID)
	if existing == nil || existing.UserID != userID {
		return false
	}
	if !models.IsStarValueValid(rating.StarValue) {
		return false
	}

	commentChanged := existing.Comment != rating.Comment
	existing.StarValue = rating.StarValue
	existing.Comment = rating.Comment
	if commentChanged {
		existing.CommentConfirmed = false
	}

	return s.ratingRepo.Update(ctx, existing)
}

func (s *ratingService) DeleteRating(ctx context.Context, ratingID, userID uint) bool {
	if ratingID == 0 || userID == 0 {
		return false
	}

	existing := s.ratingRepo.FindByID(ctx, ratingID)
	if existing == nil || existing.UserID != userID {
		return false
	}
	return s.ratingRepo.Delete(ctx, ratingID)
}

// ConfirmComment marks the rating's comment as moderated. Only the owner
// may confirm, only non-blank comments qualify, and confirming an already
// confirmed rating is a no-op success.
func (s *ratingService) ConfirmComment(ctx context.Context, ratingID, userID uint) bool {
	if ratingID == 0 || userID == 0 {
		return false
	}

	existing := s.ratingRepo.FindByID(ctx, ratingID)
	if existing == nil || existing.UserID != userID {
		return false
	}
	if strings.TrimSpace(existing.Comment) == "" {
		return false
	}
	if existing.CommentConfirmed {
		return true
	}
	return s.ratingRepo.ConfirmComment(ctx, ratingID)
}

// LikeRating records a like from another user. Authors cannot like their
// own rating, and a repeated like by the same user fails non-fatally.
func (s *ratingService) LikeRating(ctx context.Context, ratingID, userID uint) bool {
	if ratingID == 0 || userID == 0 {
		return false
	}

	rating := s.ratingRepo.FindByID(ctx, ratingID)
	if rating == nil || rating.UserID == userID {
		return false
	}
	return s.ratingRepo.AddLike(ctx, ratingID, userID)
}

func (s *ratingService) UnlikeRating(ctx context.Context, ratingID, userID uint) bool {
	if ratingID == 0 || userID == 0 {
		return false
	}

	rating := s.ratingRepo.FindByID(ctx, ratingID)
	if rating == nil || rating.UserID == userID {
		return false
	}
	return s.ratingRepo.RemoveLike(ctx, ratingID, userID)
}

func isCreatable(rating *models.Rating) bool {
	return rating != nil &&
		rating.MediaID > 0 &&
		rating.UserID > 0 &&
		models.IsStarValueValid(rating.StarValue)
}
