package services

import (
	"context"
	"strings"

	"mediarate-backend/internal/models"
	"mediarate-backend/internal/repository"
	"mediarate-backend/internal/services/auth"

	"github.com/sirupsen/logrus"
)

// UserService handles registration, login and token resolution. Like the
// rest of the business layer it reports rejections as nil/false/empty.
type UserService interface {
	Register(ctx context.Context, username, password string) bool
	Login(ctx context.Context, username, password string) string
	Logout(token string)
	IsTokenValid(token string) bool
	GetUserByToken(ctx context.Context, token string) *models.User
	FindByUsername(ctx context.Context, username string) *models.User
}

type userService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenStore
	logger   *logrus.Logger
}

func NewUserService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenStore, logger *logrus.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *userService) Register(ctx context.Context, username, password string) bool {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return false
	}
	if s.userRepo.FindByUsername(ctx, username) != nil {
		return false
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.WithError(err).Error("Failed to hash password")
		return false
	}
	return s.userRepo.Save(ctx, &models.User{Username: username, Password: hash})
}

// Login returns a fresh session token, or "" when the credentials do not
// match.
func (s *userService) Login(ctx context.Context, username, password string) string {
	if username == "" || password == "" {
		return ""
	}
	user := s.userRepo.FindByUsername(ctx, username)
	if user == nil {
		return ""
	}
	if !s.hasher.Matches(password, user.Password) {
		return ""
	}
	return s.tokens.Issue(user.ID)
}

func (s *userService) Logout(token string) {
	s.tokens.Invalidate(token)
}

func (s *userService) IsTokenValid(token string) bool {
	return s.tokens.IsValid(token)
}

func (s *userService) GetUserByToken(ctx context.Context, token string) *models.User {
	if token == "" {
		return nil
	}
	userID, ok := s.tokens.Resolve(token)
	if !ok {
		return nil
	}
	return s.userRepo.FindByID(ctx, userID)
}

func (s *userService) FindByUsername(ctx context.Context, username string) *models.User {
	if strings.TrimSpace(username) == "" {
		return nil
	}
	return s.userRepo.FindByUsername(ctx, username)
}
