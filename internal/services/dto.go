package services

import "mediarate-backend/internal/models"

type SortField string

const (
	SortByTitle SortField = "title"
	SortByYear  SortField = "year"
	SortByScore SortField = "score"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// MediaSearchCriteria holds freely combinable filter and sort options for
// the catalog search. Nil fields are not applied; all set filters are
// conjunctive.
type MediaSearchCriteria struct {
	TitleQuery     *string       `json:"title_query,omitempty"`
	MediaType      *string       `json:"media_type,omitempty"`
	Genre          *string       `json:"genre,omitempty"`
	ReleaseYear    *int          `json:"release_year,omitempty"`
	AgeRestriction *string       `json:"age_restriction,omitempty"`
	MinimumRating  *float64      `json:"minimum_rating,omitempty"`
	SortField      SortField     `json:"sort_field,omitempty"`
	SortDirection  SortDirection `json:"sort_direction,omitempty"`
}

func (c MediaSearchCriteria) sortField() SortField {
	switch c.SortField {
	case SortByYear, SortByScore:
		return c.SortField
	default:
		return SortByTitle
	}
}

func (c MediaSearchCriteria) sortDirection() SortDirection {
	if c.SortDirection == SortDesc {
		return SortDesc
	}
	return SortAsc
}

// MediaDetails is the enriched catalog view returned to the presentation
// layer: the media item plus its derived rating and favorite figures.
// Ratings is only populated for single-item lookups.
type MediaDetails struct {
	Media           models.Media    `json:"media"`
	AverageRating   float64         `json:"average_rating"`
	RatingCount     int             `json:"rating_count"`
	FavoritesCount  int             `json:"favorites_count"`
	FavoriteForUser bool            `json:"favorite_for_user"`
	Ratings         []models.Rating `json:"ratings,omitempty"`
}

// UserProfile is the derived profile view.
type UserProfile struct {
	Username       string  `json:"username"`
	TotalRatings   int     `json:"total_ratings"`
	AverageRating  float64 `json:"average_rating"`
	FavoriteGenre  string  `json:"favorite_genre,omitempty"`
	FavoritesCount int     `json:"favorites_count"`
}

// LeaderboardEntry ranks one user by submitted ratings.
type LeaderboardEntry struct {
	Username    string `json:"username"`
	RatingCount int    `json:"rating_count"`
}
