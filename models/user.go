package models

import (
	"time"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username     string    `gorm:"unique;not null;type:varchar(50)" json:"username"`
	DisplayName  string    `gorm:"not null;type:varchar(100)" json:"display_name"`
	PasswordHash string    `gorm:"not null" json:"-"` // Don't expose password hash in JSON
	Phone        *string   `json:"phone"`
	Email        *string   `json:"email"`
	AvatarURL    *string   `json:"avatar_url"`
	Bio          *string   `gorm:"type:varchar(500)" json:"bio"`
	LocationID   *string   `gorm:"type:varchar(36)" json:"location_id"`
	AreaID       *string   `gorm:"type:varchar(36)" json:"area_id"`
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`

	Posts    []Post    `json:"-" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"-" gorm:"foreignKey:UserID"`
	Likes    []Like    `json:"-" gorm:"foreignKey:UserID"`
}
