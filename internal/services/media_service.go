package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"mediarate-backend/internal/models"
	"mediarate-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

const recommendationLimit = 10

// Preference scoring bonuses: a genre hit dominates, media type and age
// restriction refine, and the community average adds up to 5 points.
const (
	genreMatchBonus = 6
	typeMatchBonus  = 3
	ageMatchBonus   = 2
)

type MediaService interface {
	// Catalog operations
	CreateMedia(ctx context.Context, media *models.Media) bool
	GetAllMedia(ctx context.Context) []models.Media
	GetMediaByID(ctx context.Context, id uint) *models.Media
	UpdateMedia(ctx context.Context, media *models.Media) bool
	DeleteMedia(ctx context.Context, id uint) bool

	// Search and detail views
	SearchMedia(ctx context.Context, criteria MediaSearchCriteria, requestingUserID uint) []MediaDetails
	GetDetailedMedia(ctx context.Context, id, requestingUserID uint) *MediaDetails

	// Favorites
	AddFavorite(ctx context.Context, mediaID, userID uint) bool
	RemoveFavorite(ctx context.Context, mediaID, userID uint) bool
	ListFavorites(ctx context.Context, userID uint) []MediaDetails

	// Recommendations
	RecommendMedia(ctx context.Context, userID uint) []MediaDetails
}

type mediaService struct {
	mediaRepo    repository.MediaRepository
	ratingRepo   repository.RatingRepository
	favoriteRepo repository.FavoriteRepository
	minioService *MinIOService
	logger       *logrus.Logger
}

func NewMediaService(mediaRepo repository.MediaRepository, ratingRepo repository.RatingRepository, favoriteRepo repository.FavoriteRepository, logger *logrus.Logger) MediaService {
	return &mediaService{
		mediaRepo:    mediaRepo,
		ratingRepo:   ratingRepo,
		favoriteRepo: favoriteRepo,
		logger:       logger,
	}
}

func (s *mediaService) CreateMedia(ctx context.Context, media *models.Media) bool {
	if media == nil {
		return false
	}
	media.NormalizeGenres()
	return media.IsValid() && s.mediaRepo.Save(ctx, media)
}

func (s *mediaService) GetAllMedia(ctx context.Context) []models.Media {
	return s.mediaRepo.FindAll(ctx)
}

func (s *mediaService) GetMediaByID(ctx context.Context, id uint) *models.Media {
	if id == 0 {
		return nil
	}
	return s.mediaRepo.FindByID(ctx, id)
}

func (s *mediaService) UpdateMedia(ctx context.Context, media *models.Media) bool {
	if media == nil || media.ID == 0 {
		return false
	}
	media.NormalizeGenres()
	return media.IsValid() && s.mediaRepo.Update(ctx, media)
}

// SetMinIOService attaches the object store used for poster cleanup.
func (s *mediaService) SetMinIOService(minioService *MinIOService) {
	s.minioService = minioService
}

func (s *mediaService) DeleteMedia(ctx context.Context, id uint) bool {
	if id == 0 {
		return false
	}
	existing := s.mediaRepo.FindByID(ctx, id)
	if !s.mediaRepo.Delete(ctx, id) {
		return false
	}
	if s.minioService != nil && existing != nil && existing.PosterPath != "" {
		if err := s.minioService.DeletePoster(ctx, existing.PosterPath); err != nil {
			s.logger.WithError(err).WithField("media_id", id).Warn("Poster cleanup failed")
		}
	}
	return true
}

func (s *mediaService) SearchMedia(ctx context.Context, criteria MediaSearchCriteria, requestingUserID uint) []MediaDetails {
	var baseMatches []models.Media
	for _, media := range s.mediaRepo.FindAll(ctx) {
		if matchesBasicFilters(&media, criteria) {
			baseMatches = append(baseMatches, media)
		}
	}

	summaryByID := s.summariesFor(ctx, baseMatches)
	details := make([]MediaDetails, 0, len(baseMatches))
	for _, media := range baseMatches {
		summary := summaryByID[media.ID]
		if !passesRatingThreshold(summary, criteria.MinimumRating) {
			continue
		}
		details = append(details, s.buildDetails(ctx, media, summary, requestingUserID, nil))
	}

	sortDetails(details, criteria)
	return details
}

func (s *mediaService) GetDetailedMedia(ctx context.Context, id, requestingUserID uint) *MediaDetails {
	media := s.GetMediaByID(ctx, id)
	if media == nil {
		return nil
	}
	summaryByID := s.summariesFor(ctx, []models.Media{*media})
	ratings := s.ratingRepo.FindByMediaID(ctx, id)
	if ratings == nil {
		ratings = []models.Rating{}
	}
	details := s.buildDetails(ctx, *media, summaryByID[id], requestingUserID, ratings)
	return &details
}

func (s *mediaService) AddFavorite(ctx context.Context, mediaID, userID uint) bool {
	if userID == 0 || mediaID == 0 {
		return false
	}
	if s.mediaRepo.FindByID(ctx, mediaID) == nil {
		return false
	}
	return s.favoriteRepo.AddFavorite(ctx, userID, mediaID)
}

func (s *mediaService) RemoveFavorite(ctx context.Context, mediaID, userID uint) bool {
	if userID == 0 || mediaID == 0 {
		return false
	}
	return s.favoriteRepo.RemoveFavorite(ctx, userID, mediaID)
}

func (s *mediaService) ListFavorites(ctx context.Context, userID uint) []MediaDetails {
	if userID == 0 {
		return nil
	}
	favoriteIDs := s.favoriteRepo.MediaIDsByUser(ctx, userID)
	if len(favoriteIDs) == 0 {
		return nil
	}

	var favorites []models.Media
	for _, id := range favoriteIDs {
		if media := s.mediaRepo.FindByID(ctx, id); media != nil {
			favorites = append(favorites, *media)
		}
	}

	summaryByID := s.summariesFor(ctx, favorites)
	details := make([]MediaDetails, 0, len(favorites))
	for _, media := range favorites {
		details = append(details, s.buildDetails(ctx, media, summaryByID[media.ID], userID, nil))
	}
	sort.SliceStable(details, func(i, j int) bool {
		return compareTitles(details[i], details[j]) < 0
	})
	return details
}

// RecommendMedia scores every unrated catalog entry against a preference
// profile derived from the user's 4+ star ratings. When nothing earns a
// score, it falls back to the best-rated catalog entries so cold-start
// users still get a list.
func (s *mediaService) RecommendMedia(ctx context.Context, userID uint) []MediaDetails {
	if userID == 0 {
		return nil
	}

	userRatings := s.ratingRepo.FindByUserID(ctx, userID)
	allMedia := s.mediaRepo.FindAll(ctx)
	mediaByID := make(map[uint]*models.Media, len(allMedia))
	for i := range allMedia {
		mediaByID[allMedia[i].ID] = &allMedia[i]
	}
	ratedMediaIDs := make(map[uint]bool, len(userRatings))
	for _, rating := range userRatings {
		ratedMediaIDs[rating.MediaID] = true
	}

	genreScores := make(map[string]int)
	typeScores := make(map[string]int)
	ageScores := make(map[string]int)
	for _, rating := range userRatings {
		if rating.StarValue < 4 {
			continue
		}
		ratedMedia := mediaByID[rating.MediaID]
		if ratedMedia == nil {
			continue
		}
		weight := rating.StarValue
		for _, genre := range ratedMedia.Genres {
			genreScores[normalize(genre)] += weight
		}
		typeScores[normalize(ratedMedia.MediaType)] += weight
		ageScores[normalize(ratedMedia.AgeRestriction)] += weight
	}

	topGenres := topKeys(genreScores, 3)
	topTypes := topKeys(typeScores, 2)
	topAges := topKeys(ageScores, 2)

	summaryByID := s.summariesFor(ctx, allMedia)

	type candidate struct {
		details     MediaDetails
		score       int
		average     float64
		ratingCount int
	}
	var candidates []candidate

	for _, media := range allMedia {
		if ratedMediaIDs[media.ID] {
			continue
		}
		summary := summaryByID[media.ID]
		average := 0.0
		ratingCount := 0
		if summary != nil {
			average = summary.AverageScore
			ratingCount = summary.RatingCount
		}

		score := 0
		if len(topGenres) > 0 && genresIntersect(media.Genres, topGenres) {
			score += genreMatchBonus
		}
		if len(topTypes) > 0 && topTypes[normalize(media.MediaType)] {
			score += typeMatchBonus
		}
		if len(topAges) > 0 && topAges[normalize(media.AgeRestriction)] {
			score += ageMatchBonus
		}
		if summary != nil {
			score += int(math.Min(5, math.Round(average)))
		}
		if score == 0 && ratingCount == 0 {
			continue
		}

		candidates = append(candidates, candidate{
			details:     s.buildDetails(ctx, media, summary, userID, nil),
			score:       score,
			average:     average,
			ratingCount: ratingCount,
		})
	}

	if len(candidates) == 0 {
		s.logger.WithField("user_id", userID).Debug("No scored candidates, using popularity fallback")
		minRating := 3.5
		fallback := MediaSearchCriteria{
			SortField:     SortByScore,
			SortDirection: SortDesc,
			MinimumRating: &minRating,
		}
		results := s.SearchMedia(ctx, fallback, userID)
		if len(results) > recommendationLimit {
			results = results[:recommendationLimit]
		}
		return results
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.average != b.average {
			return a.average > b.average
		}
		if a.ratingCount != b.ratingCount {
			return a.ratingCount > b.ratingCount
		}
		return compareTitles(a.details, b.details) < 0
	})

	results := make([]MediaDetails, 0, recommendationLimit)
	for _, c := range candidates {
		if len(results) == recommendationLimit {
			break
		}
		results = append(results, c.details)
	}
	return results
}

func (s *mediaService) summariesFor(ctx context.Context, mediaList []models.Media) map[uint]*models.RatingSummary {
	if len(mediaList) == 0 {
		return nil
	}
	ids := make([]uint, len(mediaList))
	for i, media := range mediaList {
		ids[i] = media.ID
	}
	summaries := s.ratingRepo.SummarizeByMediaIDs(ctx, ids)
	byID := make(map[uint]*models.RatingSummary, len(summaries))
	for i := range summaries {
		byID[summaries[i].MediaID] = &summaries[i]
	}
	return byID
}

func (s *mediaService) buildDetails(ctx context.Context, media models.Media, summary *models.RatingSummary, userID uint, ratings []models.Rating) MediaDetails {
	average := 0.0
	ratingCount := 0
	if summary != nil {
		average = summary.AverageScore
		ratingCount = summary.RatingCount
	}
	return MediaDetails{
		Media:           media,
		AverageRating:   average,
		RatingCount:     ratingCount,
		FavoritesCount:  s.favoriteRepo.CountFavoritesForMedia(ctx, media.ID),
		FavoriteForUser: userID > 0 && s.favoriteRepo.IsFavorite(ctx, userID, media.ID),
		Ratings:         ratings,
	}
}

func matchesBasicFilters(media *models.Media, criteria MediaSearchCriteria) bool {
	if criteria.TitleQuery != nil {
		if !strings.Contains(strings.ToLower(media.Title), strings.ToLower(*criteria.TitleQuery)) {
			return false
		}
	}
	if criteria.MediaType != nil {
		if normalize(media.MediaType) != normalize(*criteria.MediaType) {
			return false
		}
	}
	if criteria.Genre != nil {
		wanted := normalize(*criteria.Genre)
		found := false
		for _, genre := range media.Genres {
			if normalize(genre) == wanted {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if criteria.ReleaseYear != nil {
		if media.ReleaseYear == nil || *media.ReleaseYear != *criteria.ReleaseYear {
			return false
		}
	}
	if criteria.AgeRestriction != nil {
		if normalize(media.AgeRestriction) != normalize(*criteria.AgeRestriction) {
			return false
		}
	}
	return true
}

// Items with no ratings never pass a minimum-rating filter.
func passesRatingThreshold(summary *models.RatingSummary, minimumRating *float64) bool {
	if minimumRating == nil {
		return true
	}
	return summary != nil && summary.AverageScore >= *minimumRating
}

// sortDetails orders by the requested primary key, applying the direction
// to that key only. Ties always break by case-insensitive title ascending.
func sortDetails(details []MediaDetails, criteria MediaSearchCriteria) {
	field := criteria.sortField()
	desc := criteria.sortDirection() == SortDesc

	sort.SliceStable(details, func(i, j int) bool {
		cmp := comparePrimary(details[i], details[j], field)
		if desc {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
		return compareTitles(details[i], details[j]) < 0
	})
}

func comparePrimary(a, b MediaDetails, field SortField) int {
	switch field {
	case SortByYear:
		ya, yb := yearOrLowest(a.Media.ReleaseYear), yearOrLowest(b.Media.ReleaseYear)
		switch {
		case ya < yb:
			return -1
		case ya > yb:
			return 1
		}
		return 0
	case SortByScore:
		switch {
		case a.AverageRating < b.AverageRating:
			return -1
		case a.AverageRating > b.AverageRating:
			return 1
		}
		return 0
	default:
		return compareTitles(a, b)
	}
}

func compareTitles(a, b MediaDetails) int {
	return strings.Compare(strings.ToLower(a.Media.Title), strings.ToLower(b.Media.Title))
}

// Items without a release year sort as the lowest possible value.
func yearOrLowest(year *int) int {
	if year == nil {
		return math.MinInt32
	}
	return *year
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func genresIntersect(genres []string, preferred map[string]bool) bool {
	for _, genre := range genres {
		if preferred[normalize(genre)] {
			return true
		}
	}
	return false
}

// topKeys selects the limit highest-weighted keys. Ties break
// alphabetically on the normalized key so the selection is deterministic.
func topKeys(scores map[string]int, limit int) map[string]bool {
	if len(scores) == 0 || limit <= 0 {
		return nil
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
	if len(keys) > limit {
		keys = keys[:limit]
	}
	top := make(map[string]bool, len(keys))
	for _, key := range keys {
		top[key] = true
	}
	return top
}
