package models

import "time"

type Location struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Country     *string   `json:"country"`
	State       *string   `json:"state"`
	District    *string   `json:"district"`
	City        *string   `json:"city"`
	PostalCode  *string   `json:"postal_code"`
	AddressLine *string   `json:"address_line"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
}
