package models

import (
	"time"
)

// Report reasons accepted by the API.
const (
	ReasonSpam          = "spam"
	ReasonInappropriate = "inappropriate"
	ReasonHarassment    = "harassment"
	ReasonFake          = "fake"
	ReasonOther         = "other"
)

// Report targets exactly one of PostID or UserID.
type Report struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ReporterID  string    `gorm:"not null;type:varchar(36)" json:"reporter_id"`
	PostID      *string   `gorm:"type:varchar(36)" json:"post_id"`
	UserID      *string   `gorm:"type:varchar(36)" json:"user_id"`
	Reason      string    `gorm:"not null;type:varchar(20)" json:"reason"`
	Description *string   `gorm:"type:varchar(500)" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	Reporter User `json:"-" gorm:"foreignKey:ReporterID"`
}
