package models

import (
	"time"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID    string    `gorm:"not null;index;type:varchar(36)" json:"post_id"`
	UserID    string    `gorm:"not null;type:varchar(36)" json:"user_id"`
	Text      string    `gorm:"not null;type:varchar(280)" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Post Post `json:"-" gorm:"foreignKey:PostID"`
}
