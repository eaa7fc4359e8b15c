package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/our-area/api-go/models"
	"github.com/our-area/api-go/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) (*gorm.DB, *Store) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Area{}, &models.Location{}, &models.Post{},
		&models.PostImage{}, &models.Like{}, &models.Wishlist{},
		&models.Comment{}, &models.Report{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// Serialize access so concurrent tests never hit sqlite busy errors.
	sqlDB.SetMaxOpenConns(1)
	return db, New(storage.NewSQLDB(sqlDB, "sqlite3"))
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		DisplayName:  username,
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedArea(t *testing.T, db *gorm.DB, id, name string) models.Area {
	t.Helper()
	area := models.Area{ID: id, Name: name, CenterLat: 40.7, CenterLng: -74.0, RadiusM: 2000}
	if err := db.Create(&area).Error; err != nil {
		t.Fatalf("seed area: %v", err)
	}
	return area
}

func seedPost(t *testing.T, db *gorm.DB, userID, areaID string, createdAt time.Time) models.Post {
	t.Helper()
	post := models.Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		AreaID:    areaID,
		Text:      "hello",
		Category:  models.CategoryEvent,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}
