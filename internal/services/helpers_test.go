package services

import (
	"context"
	"io"
	"testing"

	"mediarate-backend/internal/models"
	"mediarate-backend/internal/repository"
	"mediarate-backend/internal/services/auth"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// serviceFixture wires the business layer onto the in-memory repositories.
type serviceFixture struct {
	media    MediaService
	ratings  RatingService
	profiles ProfileService
	users    UserService

	mediaRepo    *repository.MemoryMediaRepository
	ratingRepo   *repository.MemoryRatingRepository
	favoriteRepo *repository.MemoryFavoriteRepository
	userRepo     *repository.MemoryUserRepository
}

func newServiceFixture() *serviceFixture {
	log := testLogger()
	mediaRepo := repository.NewMemoryMediaRepository()
	ratingRepo := repository.NewMemoryRatingRepository()
	favoriteRepo := repository.NewMemoryFavoriteRepository()
	userRepo := repository.NewMemoryUserRepository()

	mediaService := NewMediaService(mediaRepo, ratingRepo, favoriteRepo, log)
	return &serviceFixture{
		media:        mediaService,
		ratings:      NewRatingService(ratingRepo, mediaRepo, log),
		profiles:     NewProfileService(userRepo, ratingRepo, favoriteRepo, mediaService, log),
		users:        NewUserService(userRepo, auth.NewPasswordHasher(bcrypt.MinCost), auth.NewTokenStore(), log),
		mediaRepo:    mediaRepo,
		ratingRepo:   ratingRepo,
		favoriteRepo: favoriteRepo,
		userRepo:     userRepo,
	}
}

func (f *serviceFixture) addMedia(t *testing.T, title, mediaType, age string, year int, genres ...string) uint {
	t.Helper()
	media := &models.Media{
		Title:           title,
		MediaType:       mediaType,
		AgeRestriction:  age,
		ReleaseYear:     &year,
		Genres:          genres,
		CreatedByUserID: 1,
	}
	if !f.media.CreateMedia(context.Background(), media) {
		t.Fatalf("failed to create media %q", title)
	}
	return media.ID
}

func (f *serviceFixture) rate(t *testing.T, mediaID, userID uint, stars int, comment string) *models.Rating {
	t.Helper()
	rating := f.ratings.CreateRating(context.Background(), &models.Rating{
		MediaID:   mediaID,
		UserID:    userID,
		StarValue: stars,
		Comment:   comment,
	})
	if rating == nil {
		t.Fatalf("rating media %d by user %d was rejected", mediaID, userID)
	}
	return rating
}

func (f *serviceFixture) addUser(t *testing.T, username string) uint {
	t.Helper()
	user := &models.User{Username: username, Password: "irrelevant"}
	if !f.userRepo.Save(context.Background(), user) {
		t.Fatalf("failed to create user %q", username)
	}
	return user.ID
}

func titles(details []MediaDetails) []string {
	result := make([]string, 0, len(details))
	for _, d := range details {
		result = append(result, d.Media.Title)
	}
	return result
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
