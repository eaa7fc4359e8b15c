package models

import (
	"time"
)

// Wishlist mirrors Like: a presence row per (post, user) pair.
type Wishlist struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `gorm:"not null;uniqueIndex:idx_wishlists_post_user;type:varchar(36)"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_wishlists_post_user;type:varchar(36)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID"`
	Post Post `gorm:"foreignKey:PostID"`
}
