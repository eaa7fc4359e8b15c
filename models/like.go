package models

import (
	"time"
)

// Like is a presence row: its existence means the user likes the post.
// The composite unique index is what keeps concurrent toggles from ever
// producing duplicate rows.
type Like struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `gorm:"not null;uniqueIndex:idx_likes_post_user;type:varchar(36)"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_likes_post_user;type:varchar(36)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID"`
	Post Post `gorm:"foreignKey:PostID"`
}
