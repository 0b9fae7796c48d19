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

// FavoriteRepository abstracts the user-to-media bookmark relation.
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID, mediaID uint) bool
	RemoveFavorite(ctx context.Context, userID, mediaID uint) bool
	IsFavorite(ctx context.Context, userID, mediaID uint) bool
	MediaIDsByUser(ctx context.Context, userID uint) []uint
	CountFavoritesForMedia(ctx context.Context, mediaID uint) int
}

type favoriteRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewFavoriteRepository(db *database.Database) FavoriteRepository {
	return &favoriteRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *favoriteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *favoriteRepository) AddFavorite(ctx context.Context, userID, mediaID uint) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	favorite := models.Favorite{UserID: userID, MediaID: mediaID}
	if err := r.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			logrus.WithError(err).WithFields(logrus.Fields{
				"user_id":  userID,
				"media_id": mediaID,
			}).Error("Failed to add favorite")
		}
		return false
	}
	return true
}

func (r *favoriteRepository) RemoveFavorite(ctx context.Context, userID, mediaID uint) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		logrus.WithError(result.Error).WithFields(logrus.Fields{
			"user_id":  userID,
			"media_id": mediaID,
		}).Error("Failed to remove favorite")
		return false
	}
	return result.RowsAffected > 0
}

func (r *favoriteRepository) IsFavorite(ctx context.Context, userID, mediaID uint) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		Count(&count).Error
	if err != nil {
		logrus.WithError(err).Error("Failed to check favorite")
		return false
	}
	return count > 0
}

func (r *favoriteRepository) MediaIDsByUser(ctx context.Context, userID uint) []uint {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var mediaIDs []uint
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("media_id", &mediaIDs).Error
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load favorites")
		return nil
	}
	return mediaIDs
}

func (r *favoriteRepository) CountFavoritesForMedia(ctx context.Context, mediaID uint) int {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("media_id = ?", mediaID).
		Count(&count).Error
	if err != nil {
		logrus.WithError(err).WithField("media_id", mediaID).Error("Failed to count favorites")
		return 0
	}
	return int(count)
}
