package services

import (
	"testing"
	"time"

	"photo-review-api/models"
)

func TestFixReviewCounts_RepairsDrift(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	photo := createTestPhoto(t, db, owner.UserID, time.Now())

	a := createTestUser(t, db, "reviewera")
	b := createTestUser(t, db, "reviewerb")
	createApprovedReview(t, db, photo.PhotoID, a.UserID, 80)
	createApprovedReview(t, db, photo.PhotoID, b.UserID, 60)

	// Simulate a crash between the review insert and the counter update.
	if err := db.Model(&models.Photo{}).Where("photo_id = ?", photo.PhotoID).
		Updates(map[string]interface{}{"reviews_received": 1, "average_score": 80.0}).Error; err != nil {
		t.Fatal(err)
	}

	fixes, err := NewReconcileService(db).FixReviewCounts()
	if err != nil {
		t.Fatalf("FixReviewCounts: %v", err)
	}
	if len(fixes) != 1 {
		t.Fatalf("got %d fixes, want 1", len(fixes))
	}
	if fixes[0].ReviewsBefore != 1 || fixes[0].ReviewsAfter != 2 {
		t.Errorf("fix = %+v", fixes[0])
	}

	var stored models.Photo
	if err := db.First(&stored, photo.PhotoID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.ReviewsReceived != 2 {
		t.Errorf("reviews_received %d, want 2", stored.ReviewsReceived)
	}
	if stored.AverageScore == nil || *stored.AverageScore != 70.0 {
		t.Errorf("average_score %v, want 70", stored.AverageScore)
	}
}

func TestFixReviewCounts_NoDriftNoFixes(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	photo := createTestPhoto(t, db, owner.UserID, time.Now())

	reviewer := createTestUser(t, db, "reviewer")
	createApprovedReview(t, db, photo.PhotoID, reviewer.UserID, 90)
	avg := 90.0
	if err := db.Model(&models.Photo{}).Where("photo_id = ?", photo.PhotoID).
		Updates(map[string]interface{}{"reviews_received": 1, "average_score": avg}).Error; err != nil {
		t.Fatal(err)
	}

	fixes, err := NewReconcileService(db).FixReviewCounts()
	if err != nil {
		t.Fatal(err)
	}
	if len(fixes) != 0 {
		t.Errorf("got %d fixes, want none", len(fixes))
	}
}

func TestFixReviewCounts_IgnoresUnapprovedReviews(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	photo := createTestPhoto(t, db, owner.UserID, time.Now())

	reviewer := createTestUser(t, db, "reviewer")
	review := models.Review{
		PhotoID:          photo.PhotoID,
		ReviewerID:       reviewer.UserID,
		Score:            10,
		Comment:          "pending comment",
		WordCount:        60,
		ModerationStatus: models.ModerationStatusPending,
		CreatedAt:        time.Now(),
	}
	if err := db.Create(&review).Error; err != nil {
		t.Fatal(err)
	}

	// Drift the counter upward; the pending review must not count.
	if err := db.Model(&models.Photo{}).Where("photo_id = ?", photo.PhotoID).
		Update("reviews_received", 1).Error; err != nil {
		t.Fatal(err)
	}

	fixes, err := NewReconcileService(db).FixReviewCounts()
	if err != nil {
		t.Fatal(err)
	}
	if len(fixes) != 1 {
		t.Fatalf("got %d fixes, want 1", len(fixes))
	}
	if fixes[0].ReviewsAfter != 0 {
		t.Errorf("pending review counted: %+v", fixes[0])
	}
}
