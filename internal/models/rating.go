package models

import "time"

type Rating struct {
	ID               uint      `gorm:"primaryKey" json:"id" example:"1"`
	MediaID          uint      `gorm:"not null;uniqueIndex:idx_ratings_media_user" json:"media_id"`
	UserID           uint      `gorm:"not null;uniqueIndex:idx_ratings_media_user" json:"user_id"`
	StarValue        int       `gorm:"not null" json:"star_value" example:"4"`
	Comment          string    `gorm:"type:text" json:"comment,omitempty"`
	CommentConfirmed bool      `gorm:"not null;default:false" json:"comment_confirmed"`
	CreatedAt        time.Time `json:"created_at"`

	// LikedByUserIDs is loaded from the rating_likes table by the
	// repositories and always handed out as its own slice, never shared
	// with stored state.
	LikedByUserIDs []uint `gorm:"-" json:"liked_by_user_ids"`
}

func (Rating) TableName() string {
	return "ratings"
}

// IsStarValueValid reports whether a star value is inside the 1..5 scale.
func IsStarValueValid(starValue int) bool {
	return starValue >= 1 && starValue <= 5
}

// LikedBy reports whether the given user already likes this rating.
func (r *Rating) LikedBy(userID uint) bool {
	for _, id := range r.LikedByUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// RatingLike is one user's like on one rating. The unique index resolves
// concurrent duplicate likes at the store boundary.
type RatingLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RatingID  uint      `gorm:"not null;uniqueIndex:idx_rating_likes_rating_user" json:"rating_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rating_likes_rating_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (RatingLike) TableName() string {
	return "rating_likes"
}

// UserRatingCount is a leaderboard aggregate: how many ratings one user
// has submitted.
type UserRatingCount struct {
	UserID      uint `json:"user_id"`
	RatingCount int  `json:"rating_count"`
}
