package models

type Area struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	CenterLat float64 `gorm:"not null;type:decimal(10,8)" json:"center_lat"`
	CenterLng float64 `gorm:"not null;type:decimal(11,8)" json:"center_lng"`
	RadiusM   int     `gorm:"not null" json:"radius_m"`

	// Distance from a query point, filled by the nearby lookup. Not stored.
	Distance float64 `json:"distance,omitempty" gorm:"-"`
}
