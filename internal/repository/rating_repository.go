package repository

import (
	"context"
	"errors"
	"time"

	"mediarate-backend/internal/database"
	"mediarate-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RatingRepository abstracts persistence for ratings, their moderation flag
// and their like sets. Uniqueness of one rating per (media, user) and one
// like per (rating, user) is enforced here, not by the business layer: a
// losing concurrent writer simply gets false back.
type RatingRepository interface {
	Save(ctx context.Context, rating *models.Rating) *models.Rating
	Update(ctx context.Context, rating *models.Rating) bool
	Delete(ctx context.Context, id uint) bool
	FindByID(ctx context.Context, id uint) *models.Rating
	FindByMediaAndUser(ctx context.Context, mediaID, userID uint) *models.Rating
	FindByMediaID(ctx context.Context, mediaID uint) []models.Rating
	FindByUserID(ctx context.Context, userID uint) []models.Rating
	SummarizeByMediaIDs(ctx context.Context, ids []uint) []models.RatingSummary
	RatingCountsPerUser(ctx context.Context, limit int) []models.UserRatingCount
	ConfirmComment(ctx context.Context, ratingID uint) bool
	AddLike(ctx context.Context, ratingID, userID uint) bool
	RemoveLike(ctx context.Context, ratingID, userID uint) bool
	FindLikes(ctx context.Context, ratingID uint) []uint
}

type ratingRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewRatingRepository(db *database.Database) RatingRepository {
	return &ratingRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *ratingRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *ratingRepository) Save(ctx context.Context, rating *models.Rating) *models.Rating {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logrus.WithFields(logrus.Fields{
				"media_id": rating.MediaID,
				"user_id":  rating.UserID,
			}).Warn("Duplicate rating rejected by unique index")
		} else {
			logrus.WithError(err).Error("Failed to save rating")
		}
		return nil
	}
	rating.LikedByUserIDs = nil
	return rating
}

func (r *ratingRepository) Update(ctx context.Context, rating *models.Rating) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).Model(&models.Rating{}).Where("id = ?", rating.ID).
		Select("StarValue", "Comment", "CommentConfirmed").
		Updates(rating)
	if result.Error != nil {
		logrus.WithError(result.Error).WithField("rating_id", rating.ID).Error("Failed to update rating")
		return false
	}
	return result.RowsAffected > 0
}

func (r *ratingRepository) Delete(ctx context.Context, id uint) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	ok := true
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rating_id = ?", id).Delete(&models.RatingLike{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Rating{}, id)
		if result.Error != nil {
			return result.Error
		}
		ok = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		logrus.WithError(err).WithField("rating_id", id).Error("Failed to delete rating")
		return false
	}
	return ok
}

func (r *ratingRepository) FindByID(ctx context.Context, id uint) *models.Rating {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rating models.Rating
	err := r.db.WithContext(ctx).First(&rating, id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithField("rating_id", id).Error("Failed to load rating")
		}
		return nil
	}
	r.attachLikes(ctx, []*models.Rating{&rating})
	return &rating
}

func (r *ratingRepository) FindByMediaAndUser(ctx context.Context, mediaID, userID uint) *models.Rating {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("media_id = ? AND user_id = ?", mediaID, userID).
		First(&rating).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithFields(logrus.Fields{
				"media_id": mediaID,
				"user_id":  userID,
			}).Error("Failed to load rating for media and user")
		}
		return nil
	}
	r.attachLikes(ctx, []*models.Rating{&rating})
	return &rating
}

func (r *ratingRepository) FindByMediaID(ctx context.Context, mediaID uint) []models.Rating {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ratings []models.Rating
	err := r.db.WithContext(ctx).Where("media_id = ?", mediaID).Order("created_at").Find(&ratings).Error
	if err != nil {
		logrus.WithError(err).WithField("media_id", mediaID).Error("Failed to load ratings for media")
		return nil
	}
	refs := make([]*models.Rating, len(ratings))
	for i := range ratings {
		refs[i] = &ratings[i]
	}
	r.attachLikes(ctx, refs)
	return ratings
}

func (r *ratingRepository) FindByUserID(ctx context.Context, userID uint) []models.Rating {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ratings []models.Rating
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&ratings).Error
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load ratings for user")
		return nil
	}
	refs := make([]*models.Rating, len(ratings))
	for i := range ratings {
		refs[i] = &ratings[i]
	}
	r.attachLikes(ctx, refs)
	return ratings
}

func (r *ratingRepository) SummarizeByMediaIDs(ctx context.Context, ids []uint) []models.RatingSummary {
	if len(ids) == 0 {
		return nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var summaries []models.RatingSummary
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("media_id, AVG(star_value) AS average_score, COUNT(*) AS rating_count").
		Where("media_id IN ?", ids).
		Group("media_id").
		Scan(&summaries).Error
	if err != nil {
		logrus.WithError(err).Error("Failed to summarize ratings")
		return nil
	}
	return summaries
}

func (r *ratingRepository) RatingCountsPerUser(ctx context.Context, limit int) []models.UserRatingCount {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var counts []models.UserRatingCount
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("user_id, COUNT(*) AS rating_count").
		Group("user_id").
		Order("rating_count DESC, user_id ASC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		logrus.WithError(err).Error("Failed to count ratings per user")
		return nil
	}
	return counts
}

func (r *ratingRepository) ConfirmComment(ctx context.Context, ratingID uint) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("id = ?", ratingID).
		Update("comment_confirmed", true)
	if result.Error != nil {
		logrus.WithError(result.Error).WithField("rating_id", ratingID).Error("Failed to confirm comment")
		return false
	}
	return result.RowsAffected > 0
}

func (r *ratingRepository) AddLike(ctx context.Context, ratingID, userID uint) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	like := models.RatingLike{RatingID: ratingID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			logrus.WithError(err).WithFields(logrus.Fields{
				"rating_id": ratingID,
				"user_id":   userID,
			}).Error("Failed to add like")
		}
		return false
	}
	return true
}

func (r *ratingRepository) RemoveLike(ctx context.Context, ratingID, userID uint) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).
		Where("rating_id = ? AND user_id = ?", ratingID, userID).
		Delete(&models.RatingLike{})
	if result.Error != nil {
		logrus.WithError(result.Error).WithFields(logrus.Fields{
			"rating_id": ratingID,
			"user_id":   userID,
		}).Error("Failed to remove like")
		return false
	}
	return result.RowsAffected > 0
}

func (r *ratingRepository) FindLikes(ctx context.Context, ratingID uint) []uint {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var userIDs []uint
	err := r.db.WithContext(ctx).Model(&models.RatingLike{}).
		Where("rating_id = ?", ratingID).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		logrus.WithError(err).WithField("rating_id", ratingID).Error("Failed to load likes")
		return nil
	}
	return userIDs
}

// attachLikes batch-loads like sets for the given ratings.
func (r *ratingRepository) attachLikes(ctx context.Context, ratings []*models.Rating) {
	if len(ratings) == 0 {
		return
	}
	ids := make([]uint, len(ratings))
	for i, rating := range ratings {
		ids[i] = rating.ID
	}

	var likes []models.RatingLike
	err := r.db.WithContext(ctx).Where("rating_id IN ?", ids).Find(&likes).Error
	if err != nil {
		logrus.WithError(err).Error("Failed to load like sets")
		return
	}

	byRating := make(map[uint][]uint, len(ratings))
	for _, like := range likes {
		byRating[like.RatingID] = append(byRating[like.RatingID], like.UserID)
	}
	for _, rating := range ratings {
		rating.LikedByUserIDs = byRating[rating.ID]
	}
}
