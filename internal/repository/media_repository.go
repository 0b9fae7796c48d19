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

// MediaRepository abstracts persistence for catalog entries. A failing
// backend is reported the same way as a missing row or a rejected write;
// callers never see infrastructure errors.
type MediaRepository interface {
	Save(ctx context.Context, media *models.Media) bool
	FindAll(ctx context.Context) []models.Media
	FindByID(ctx context.Context, id uint) *models.Media
	Update(ctx context.Context, media *models.Media) bool
	Delete(ctx context.Context, id uint) bool
}

type mediaRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewMediaRepository(db *database.Database) MediaRepository {
	return &mediaRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *mediaRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *mediaRepository) Save(ctx context.Context, media *models.Media) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(media).Error; err != nil {
		logrus.WithError(err).Error("Failed to save media")
		return false
	}
	return true
}

func (r *mediaRepository) FindAll(ctx context.Context) []models.Media {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var media []models.Media
	if err := r.db.WithContext(ctx).Order("id").Find(&media).Error; err != nil {
		logrus.WithError(err).Error("Failed to load media catalog")
		return nil
	}
	return media
}

func (r *mediaRepository) FindByID(ctx context.Context, id uint) *models.Media {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var media models.Media
	err := r.db.WithContext(ctx).First(&media, id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithField("media_id", id).Error("Failed to load media")
		}
		return nil
	}
	return &media
}

func (r *mediaRepository) Update(ctx context.Context, media *models.Media) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).Model(&models.Media{}).Where("id = ?", media.ID).
		Select("Title", "Description", "MediaType", "ReleaseYear", "AgeRestriction", "Genres", "PosterPath").
		Updates(media)
	if result.Error != nil {
		logrus.WithError(result.Error).WithField("media_id", media.ID).Error("Failed to update media")
		return false
	}
	return result.RowsAffected > 0
}

func (r *mediaRepository) Delete(ctx context.Context, id uint) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).Delete(&models.Media{}, id)
	if result.Error != nil {
		logrus.WithError(result.Error).WithField("media_id", id).Error("Failed to delete media")
		return false
	}
	return result.RowsAffected > 0
}
