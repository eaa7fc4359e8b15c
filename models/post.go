package models

import (
	"time"
)

// Post categories accepted by the API.
const (
	CategoryEvent    = "event"
	CategoryBusiness = "business"
	CategoryActivity = "activity"
	CategoryNews     = "news"
	CategoryQuestion = "question"
	CategoryOther    = "other"
)

type Post struct {
	ID         string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string     `gorm:"not null;index;type:varchar(36)" json:"user_id"`
	User       User       `json:"-" gorm:"foreignKey:UserID"`
	AreaID     string     `gorm:"not null;index;type:varchar(36)" json:"area_id"`
	LocationID *string    `gorm:"type:varchar(36)" json:"location_id"`
	Text       string     `gorm:"not null;type:varchar(280)" json:"text"`
	Category   string     `gorm:"not null;type:varchar(20)" json:"category"`
	Lat        *float64   `json:"lat"`
	Lng        *float64   `json:"lng"`
	EventTime  *time.Time `json:"event_time"`
	IsDeleted  bool       `gorm:"not null;default:false" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Images   []PostImage `json:"images" gorm:"foreignKey:PostID"`
	Comments []Comment   `json:"-" gorm:"foreignKey:PostID"`
	Likes    []Like      `json:"-" gorm:"foreignKey:PostID"`
}

type PostImage struct {
	ID       string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID   string `gorm:"not null;index;uniqueIndex:idx_post_image_order;type:varchar(36)" json:"post_id"`
	URL      string `gorm:"not null" json:"url"`
	OrderIdx int    `gorm:"not null;uniqueIndex:idx_post_image_order" json:"order_idx"`
}
