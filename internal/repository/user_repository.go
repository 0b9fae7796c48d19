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

// UserRepository abstracts persistence for accounts.
type UserRepository interface {
	Save(ctx context.Context, user *models.User) bool
	FindByID(ctx context.Context, id uint) *models.User
	FindByUsername(ctx context.Context, username string) *models.User
}

type userRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewUserRepository(db *database.Database) UserRepository {
	return &userRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *userRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *userRepository) Save(ctx context.Context, user *models.User) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			logrus.WithError(err).Error("Failed to save user")
		}
		return false
	}
	return true
}

func (r *userRepository) FindByID(ctx context.Context, id uint) *models.User {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithField("user_id", id).Error("Failed to load user")
		}
		return nil
	}
	return &user
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) *models.User {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithField("username", username).Error("Failed to load user")
		}
		return nil
	}
	return &user
}
