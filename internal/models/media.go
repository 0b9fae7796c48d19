package models

import (
	"strings"
	"time"
)

const (
	MinReleaseYear = 1900
	MaxReleaseYear = 2100
)

type Media struct {
	ID              uint      `gorm:"primaryKey" json:"id" example:"1"`
	Title           string    `gorm:"not null;index" json:"title" example:"Blade Runner"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	MediaType       string    `gorm:"not null;index" json:"media_type" example:"movie"`
	ReleaseYear     *int      `gorm:"index" json:"release_year,omitempty" example:"1982"`
	AgeRestriction  string    `gorm:"not null" json:"age_restriction" example:"16+"`
	Genres          []string  `gorm:"serializer:json" json:"genres"`
	PosterPath      string    `json:"poster_path,omitempty"`
	CreatedByUserID uint      `gorm:"index" json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Media) TableName() string {
	return "media"
}

// NormalizeGenres drops blank entries and trims the rest, preserving order.
func (m *Media) NormalizeGenres() {
	cleaned := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		g = strings.TrimSpace(g)
		if g != "" {
			cleaned = append(cleaned, g)
		}
	}
	m.Genres = cleaned
}

// IsValid reports whether the media item satisfies the catalog rules:
// non-blank title, type and age restriction, a creator, at least one genre,
// and a release year (when set) within the allowed range.
func (m *Media) IsValid() bool {
	if m == nil {
		return false
	}
	if strings.TrimSpace(m.Title) == "" {
		return false
	}
	if strings.TrimSpace(m.MediaType) == "" {
		return false
	}
	if strings.TrimSpace(m.AgeRestriction) == "" {
		return false
	}
	if m.CreatedByUserID == 0 {
		return false
	}
	if m.ReleaseYear != nil && (*m.ReleaseYear < MinReleaseYear || *m.ReleaseYear > MaxReleaseYear) {
		return false
	}
	return len(m.Genres) > 0
}

// RatingSummary is derived per query from the ratings of one media item.
// It is never persisted.
type RatingSummary struct {
	MediaID      uint    `json:"media_id"`
	AverageScore float64 `json:"average_score"`
	RatingCount  int     `json:"rating_count"`
}
