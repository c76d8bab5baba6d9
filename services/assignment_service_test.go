package services

import (
	"testing"
	"time"

	"photo-review-api/models"
)

func TestAssignPhotosToReviewer_ExcludesOwnPhotos(t *testing.T) {
	db := newTestDB(t)
	reviewer := createTestUser(t, db, "reviewer")
	other := createTestUser(t, db, "other")

	createTestPhoto(t, db, reviewer.UserID, time.Now())
	theirPhoto := createTestPhoto(t, db, other.UserID, time.Now())

	svc := NewAssignmentService(db)
	assignments, err := svc.AssignPhotosToReviewer(reviewer.UserID, DefaultAssignmentBatch)
	if err != nil {
		t.Fatalf("AssignPhotosToReviewer: %v", err)
	}

	if len(assignments) != 1 {
		t.Fatalf("got %d assignments, want 1", len(assignments))
	}
	if assignments[0].PhotoID != theirPhoto.PhotoID {
		t.Errorf("assigned photo %d, want %d", assignments[0].PhotoID, theirPhoto.PhotoID)
	}
}

func TestAssignPhotosToReviewer_NeverRepeatsAPair(t *testing.T) {
	db := newTestDB(t)
	reviewer := createTestUser(t, db, "reviewer")
	owner := createTestUser(t, db, "owner")
	photo := createTestPhoto(t, db, owner.UserID, time.Now())

	svc := NewAssignmentService(db)
	first, err := svc.AssignPhotosToReviewer(reviewer.UserID, 1)
	if err != nil || len(first) != 1 {
		t.Fatalf("first assignment: %v (%d created)", err, len(first))
	}

	// Complete it; a completed pair must still never be reissued.
	if err := svc.MarkAssignmentComplete(reviewer.UserID, photo.PhotoID); err != nil {
		t.Fatal(err)
	}

	second, err := svc.AssignPhotosToReviewer(reviewer.UserID, 1)
	if err != nil {
		t.Fatalf("second assignment: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("pair was reissued: %d assignments", len(second))
	}
}

func TestAssignPhotosToReviewer_SkipsFullPhotos(t *testing.T) {
	db := newTestDB(t)
	reviewer := createTestUser(t, db, "reviewer")
	owner := createTestUser(t, db, "owner")
	photo := createTestPhoto(t, db, owner.UserID, time.Now())

	if err := db.Model(&models.Photo{}).Where("photo_id = ?", photo.PhotoID).
		Update("reviews_received", ReviewsPerPhoto).Error; err != nil {
		t.Fatal(err)
	}

	svc := NewAssignmentService(db)
	assignments, err := svc.AssignPhotosToReviewer(reviewer.UserID, DefaultAssignmentBatch)
	if err != nil {
		t.Fatalf("AssignPhotosToReviewer: %v", err)
	}
	if len(assignments) != 0 {
		t.Errorf("full photo was assigned: %d assignments", len(assignments))
	}
}

func TestAssignPhotosToReviewer_CountsOutstandingAssignments(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	photo := createTestPhoto(t, db, owner.UserID, time.Now())

	// Three received reviews plus two outstanding assignments fill the photo.
	if err := db.Model(&models.Photo{}).Where("photo_id = ?", photo.PhotoID).
		Update("reviews_received", 3).Error; err != nil {
		t.Fatal(err)
	}
	svc := NewAssignmentService(db)
	for i := 0; i < 2; i++ {
		reviewer := createTestUser(t, db, "early"+string(rune('a'+i)))
		got, err := svc.AssignPhotosToReviewer(reviewer.UserID, 1)
		if err != nil || len(got) != 1 {
			t.Fatalf("seed assignment %d: %v (%d created)", i, err, len(got))
		}
	}

	late := createTestUser(t, db, "late")
	assignments, err := svc.AssignPhotosToReviewer(late.UserID, 1)
	if err != nil {
		t.Fatalf("AssignPhotosToReviewer: %v", err)
	}
	if len(assignments) != 0 {
		t.Errorf("oversubscribed photo was assigned: %d assignments", len(assignments))
	}
}

func TestAssignPhotosToReviewer_FavorsLeastServedPhotos(t *testing.T) {
	db := newTestDB(t)
	reviewer := createTestUser(t, db, "reviewer")
	ownerA := createTestUser(t, db, "ownera")
	ownerB := createTestUser(t, db, "ownerb")

	older := createTestPhoto(t, db, ownerA.UserID, time.Now().Add(-2*time.Hour))
	newer := createTestPhoto(t, db, ownerB.UserID, time.Now().Add(-time.Hour))

	// The older photo already has a review; the newer one has none.
	if err := db.Model(&models.Photo{}).Where("photo_id = ?", older.PhotoID).
		Update("reviews_received", 1).Error; err != nil {
		t.Fatal(err)
	}

	svc := NewAssignmentService(db)
	assignments, err := svc.AssignPhotosToReviewer(reviewer.UserID, 1)
	if err != nil {
		t.Fatalf("AssignPhotosToReviewer: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("got %d assignments, want 1", len(assignments))
	}
	if assignments[0].PhotoID != newer.PhotoID {
		t.Errorf("should favor the less reviewed photo: got %d, want %d", assignments[0].PhotoID, newer.PhotoID)
	}
}

func TestMarkAssignmentComplete_Idempotent(t *testing.T) {
	db := newTestDB(t)
	reviewer := createTestUser(t, db, "reviewer")
	owner := createTestUser(t, db, "owner")
	photo := createTestPhoto(t, db, owner.UserID, time.Now())

	svc := NewAssignmentService(db)
	if _, err := svc.AssignPhotosToReviewer(reviewer.UserID, 1); err != nil {
		t.Fatal(err)
	}

	if err := svc.MarkAssignmentComplete(reviewer.UserID, photo.PhotoID); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if err := svc.MarkAssignmentComplete(reviewer.UserID, photo.PhotoID); err != nil {
		t.Fatalf("repeat completion should be a no-op: %v", err)
	}

	stats, err := svc.GetUserAssignmentStats(reviewer.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Completed != 1 || stats.Pending != 0 {
		t.Errorf("stats = %+v, want 1 completed, 0 pending", stats)
	}
}

func TestIsPhotoAssignedToUser(t *testing.T) {
	db := newTestDB(t)
	reviewer := createTestUser(t, db, "reviewer")
	owner := createTestUser(t, db, "owner")
	photo := createTestPhoto(t, db, owner.UserID, time.Now())

	svc := NewAssignmentService(db)

	assigned, err := svc.IsPhotoAssignedToUser(reviewer.UserID, photo.PhotoID)
	if err != nil {
		t.Fatal(err)
	}
	if assigned {
		t.Error("photo should not be assigned yet")
	}

	if _, err := svc.AssignPhotosToReviewer(reviewer.UserID, 1); err != nil {
		t.Fatal(err)
	}

	assigned, err = svc.IsPhotoAssignedToUser(reviewer.UserID, photo.PhotoID)
	if err != nil {
		t.Fatal(err)
	}
	if !assigned {
		t.Error("photo should be assigned")
	}

	// Completion deactivates the assignment.
	if err := svc.MarkAssignmentComplete(reviewer.UserID, photo.PhotoID); err != nil {
		t.Fatal(err)
	}
	assigned, err = svc.IsPhotoAssignedToUser(reviewer.UserID, photo.PhotoID)
	if err != nil {
		t.Fatal(err)
	}
	if assigned {
		t.Error("completed assignment should not count as active")
	}
}

func TestHasCompletedMinimumReviews(t *testing.T) {
	db := newTestDB(t)
	reviewer := createTestUser(t, db, "reviewer")
	svc := NewAssignmentService(db)

	for i := 0; i < MinimumReviewsForFeedback; i++ {
		owner := createTestUser(t, db, "owner"+string(rune('a'+i)))
		photo := createTestPhoto(t, db, owner.UserID, time.Now())

		unlocked, err := svc.HasCompletedMinimumReviews(reviewer.UserID)
		if err != nil {
			t.Fatal(err)
		}
		if unlocked {
			t.Fatalf("unlocked after %d completions, want %d", i, MinimumReviewsForFeedback)
		}

		if _, err := svc.AssignPhotosToReviewer(reviewer.UserID, 1); err != nil {
			t.Fatal(err)
		}
		if err := svc.MarkAssignmentComplete(reviewer.UserID, photo.PhotoID); err != nil {
			t.Fatal(err)
		}
	}

	unlocked, err := svc.HasCompletedMinimumReviews(reviewer.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if !unlocked {
		t.Error("should unlock at the minimum")
	}
}
