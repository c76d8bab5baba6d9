package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"photo-review-api/models"
)

// newTestDB opens a fresh in-memory database with the full schema. Each test
// gets its own database; shared cache keeps it alive across the pooled
// connections gorm opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Photo{},
		&models.Review{},
		&models.ReviewAssignment{},
		&models.ReviewRating{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()

	user := models.User{
		Name:      name,
		Email:     fmt.Sprintf("%s@example.com", name),
		Password:  "hashed",
		EloRating: InitialEloRating,
		JoinedAt:  time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func createTestPhoto(t *testing.T, db *gorm.DB, ownerID int, uploadedAt time.Time) models.Photo {
	t.Helper()

	photo := models.Photo{
		UserID:     ownerID,
		ImageURL:   fmt.Sprintf("/uploads/%d-test.jpg", ownerID),
		UploadDate: uploadedAt,
		Status:     models.PhotoStatusPending,
	}
	if err := db.Create(&photo).Error; err != nil {
		t.Fatalf("create photo for user %d: %v", ownerID, err)
	}
	return photo
}

func createApprovedReview(t *testing.T, db *gorm.DB, photoID, reviewerID, score int) models.Review {
	t.Helper()

	review := models.Review{
		PhotoID:          photoID,
		ReviewerID:       reviewerID,
		Score:            score,
		Comment:          "test comment",
		WordCount:        60,
		ModerationStatus: models.ModerationStatusApproved,
		CreatedAt:        time.Now(),
	}
	if err := db.Create(&review).Error; err != nil {
		t.Fatalf("create review (photo=%d reviewer=%d): %v", photoID, reviewerID, err)
	}
	return review
}
