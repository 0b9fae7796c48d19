package services

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"mediarate-backend/internal/models"
	"mediarate-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

const defaultLeaderboardLimit = 10

// ProfileService combines rating history, favorites and genre preference
// into derived profile views, and produces the ratings leaderboard.
type ProfileService interface {
	BuildProfile(ctx context.Context, userID uint) *UserProfile
	RatingHistory(ctx context.Context, userID uint) []models.Rating
	FavoriteMedia(ctx context.Context, userID uint) []MediaDetails
	Leaderboard(ctx context.Context, limit int) []LeaderboardEntry
}

type profileService struct {
	userRepo     repository.UserRepository
	ratingRepo   repository.RatingRepository
	favoriteRepo repository.FavoriteRepository
	mediaService MediaService
	logger       *logrus.Logger
}

func NewProfileService(userRepo repository.UserRepository, ratingRepo repository.RatingRepository, favoriteRepo repository.FavoriteRepository, mediaService MediaService, logger *logrus.Logger) ProfileService {
	return &profileService{
		userRepo:     userRepo,
		ratingRepo:   ratingRepo,
		favoriteRepo: favoriteRepo,
		mediaService: mediaService,
		logger:       logger,
	}
}

func (s *profileService) BuildProfile(ctx context.Context, userID uint) *UserProfile {
	if userID == 0 {
		return nil
	}
	user := s.userRepo.FindByID(ctx, userID)
	if user == nil {
		return nil
	}

	history := s.ratingRepo.FindByUserID(ctx, userID)
	average := 0.0
	if len(history) > 0 {
		sum := 0
		for _, rating := range history {
			sum += rating.StarValue
		}
		average = float64(sum) / float64(len(history))
	}

	return &UserProfile{
		Username:       user.Username,
		TotalRatings:   len(history),
		AverageRating:  average,
		FavoriteGenre:  s.determineFavoriteGenre(ctx, history),
		FavoritesCount: len(s.favoriteRepo.MediaIDsByUser(ctx, userID)),
	}
}

func (s *profileService) RatingHistory(ctx context.Context, userID uint) []models.Rating {
	if userID == 0 {
		return nil
	}
	return s.ratingRepo.FindByUserID(ctx, userID)
}

func (s *profileService) FavoriteMedia(ctx context.Context, userID uint) []MediaDetails {
	return s.mediaService.ListFavorites(ctx, userID)
}

// Leaderboard ranks users by submitted ratings, count descending with
// user id ascending as the tie-break. Users that cannot be resolved to a
// username anymore are skipped silently.
func (s *profileService) Leaderboard(ctx context.Context, limit int) []LeaderboardEntry {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	var entries []LeaderboardEntry
	for _, count := range s.ratingRepo.RatingCountsPerUser(ctx, limit) {
		user := s.userRepo.FindByID(ctx, count.UserID)
		if user == nil {
			s.logger.WithField("user_id", count.UserID).Debug("Skipping unresolved leaderboard user")
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Username:    user.Username,
			RatingCount: count.RatingCount,
		})
	}
	return entries
}

// determineFavoriteGenre weighs every genre of each 3+ star rated media
// item by the star value and picks the heaviest one. The label keeps the
// first original-cased spelling seen for the winning normalized key, with
// its first letter capitalized. Weight ties break alphabetically on the
// normalized key.
func (s *profileService) determineFavoriteGenre(ctx context.Context, ratings []models.Rating) string {
	if len(ratings) == 0 {
		return ""
	}

	scores := make(map[string]int)
	displayNames := make(map[string]string)
	mediaCache := make(map[uint]*models.Media)

	for _, rating := range ratings {
		if rating.StarValue < 3 {
			continue
		}
		media, cached := mediaCache[rating.MediaID]
		if !cached {
			media = s.mediaService.GetMediaByID(ctx, rating.MediaID)
			mediaCache[rating.MediaID] = media
		}
		if media == nil {
			continue
		}
		for _, genre := range media.Genres {
			normalized := normalize(genre)
			scores[normalized] += rating.StarValue
			if _, seen := displayNames[normalized]; !seen {
				displayNames[normalized] = strings.TrimSpace(genre)
			}
		}
	}
	if len(scores) == 0 {
		return ""
	}

	keys := make([]string, 0, len(scores))
	for key := range scores {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if scores[keys[i]] != scores[keys[j]] {
			return scores[keys[i]] > scores[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return formatGenreLabel(displayNames[keys[0]])
}

func formatGenreLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(trimmed)
	return string(unicode.ToUpper(first)) + trimmed[size:]
}
