package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/our-area/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the local database. A postgres-looking DSN selects the
// postgres driver, anything else is treated as a sqlite file path.
func InitDB(cfg Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	var dialector gorm.Dialector
	if isPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(strings.TrimPrefix(dsn, "sqlite:///"))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// BindDriverName maps the gorm dialect to the driver name sqlx uses to
// pick a placeholder bind type.
func BindDriverName(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "postgres"
	}
	return "sqlite3"
}

// Provision creates or updates the schema. It runs once at startup and is
// idempotent; the request path never touches schema definition.
func Provision(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Area{},
		&models.Location{},
		&models.Post{},
		&models.PostImage{},
		&models.Like{},
		&models.Wishlist{},
		&models.Comment{},
		&models.Report{},
	)
}

// SeedAreas inserts the reference areas when they are missing. Areas are
// shared lookup data with no write API, so this is the only way they come
// to exist locally.
func SeedAreas(db *gorm.DB) error {
	seed := []models.Area{
		{Name: "Downtown", CenterLat: 40.7128, CenterLng: -74.0060, RadiusM: 2000},
		{Name: "Brooklyn Heights", CenterLat: 40.6962, CenterLng: -73.9961, RadiusM: 1500},
	}
	for _, area := range seed {
		var existing models.Area
		err := db.Where("name = ?", area.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		area.ID = uuid.NewString()
		if err := db.Create(&area).Error; err != nil {
			return err
		}
	}
	return nil
}
