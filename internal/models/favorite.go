package models

import "time"

// Favorite is a user-to-media bookmark. CreatedAt doubles as the
// most-recent-first ordering key.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_media" json:"user_id"`
	MediaID   uint      `gorm:"not null;uniqueIndex:idx_favorites_user_media" json:"media_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
