package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"photo-review-api/config"
	"photo-review-api/models"
)

const (
	// ReviewsPerPhoto is how many reviews every photo converges toward.
	ReviewsPerPhoto = 5
	// MinimumReviewsForFeedback gates access to feedback on one's own photos.
	MinimumReviewsForFeedback = 5
	// DefaultAssignmentBatch is how many photos a reviewer is handed at once.
	DefaultAssignmentBatch = 5
)

// AssignmentStats summarizes a reviewer's workload for progress display.
type AssignmentStats struct {
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
}

type AssignmentService struct {
	db *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	if db == nil {
		db = config.DB
	}
	return &AssignmentService{db: db}
}

// GetPendingAssignments returns the user's incomplete assignments, photo
// details included, oldest first.
func (s *AssignmentService) GetPendingAssignments(userID int) ([]models.ReviewAssignment, error) {
	var assignments []models.ReviewAssignment
	err := s.db.Preload("Photo").
		Where("user_id = ? AND completed = ?", userID, false).
		Order("assigned_at ASC").
		Find(&assignments).Error
	return assignments, err
}

// AssignPhotosToReviewer selects up to count photos for the user to review and
// persists the pairings. A photo is eligible when the user does not own it, the
// pair has never been assigned, and its received reviews plus outstanding
// assignments leave room under ReviewsPerPhoto. Selection favors photos with
// the fewest outstanding assignments, then the fewest received reviews, then
// the oldest upload, so the backlog drains fairly. A shortfall of eligible
// photos is not an error; the result may be empty.
func (s *AssignmentService) AssignPhotosToReviewer(userID, count int) ([]models.ReviewAssignment, error) {
	if count <= 0 {
		return nil, nil
	}

	type candidate struct {
		PhotoID     int
		ActiveCount int
	}

	var candidates []candidate
	err := s.db.Table("photos AS p").
		Select("p.photo_id, COALESCE(a.active_count, 0) AS active_count").
		Joins("LEFT JOIN (SELECT photo_id, COUNT(*) AS active_count FROM review_assignments WHERE completed = ? GROUP BY photo_id) AS a ON a.photo_id = p.photo_id", false).
		Where("p.user_id <> ?", userID).
		Where("p.status <> ?", models.PhotoStatusArchived).
		Where("p.reviews_received + COALESCE(a.active_count, 0) < ?", ReviewsPerPhoto).
		Where("p.photo_id NOT IN (SELECT photo_id FROM review_assignments WHERE user_id = ?)", userID).
		Order("active_count ASC, p.reviews_received ASC, p.upload_date ASC").
		Limit(count).
		Scan(&candidates).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	created := make([]models.ReviewAssignment, 0, len(candidates))
	for _, c := range candidates {
		assignment := models.ReviewAssignment{
			UserID:     userID,
			PhotoID:    c.PhotoID,
			AssignedAt: now,
		}
		if err := s.db.Create(&assignment).Error; err != nil {
			// A concurrent request may have claimed the same pair; the unique
			// index on (user_id, photo_id) rejects the duplicate. Skip it.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			log.Printf("Failed to create assignment (user=%d photo=%d): %v", userID, c.PhotoID, err)
			continue
		}
		s.db.Preload("Photo").First(&assignment, assignment.AssignmentID)
		created = append(created, assignment)
	}

	return created, nil
}

// IsPhotoAssignedToUser reports whether an active (incomplete) assignment of
// the photo to the user exists.
func (s *AssignmentService) IsPhotoAssignedToUser(userID, photoID int) (bool, error) {
	var count int64
	err := s.db.Model(&models.ReviewAssignment{}).
		Where("user_id = ? AND photo_id = ? AND completed = ?", userID, photoID, false).
		Count(&count).Error
	return count > 0, err
}

// MarkAssignmentComplete flips the completion flag and stamps the completion
// time. A missing or already-completed assignment is a no-op, so the call is
// idempotent.
func (s *AssignmentService) MarkAssignmentComplete(userID, photoID int) error {
	now := time.Now()
	return s.db.Model(&models.ReviewAssignment{}).
		Where("user_id = ? AND photo_id = ? AND completed = ?", userID, photoID, false).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": now,
		}).Error
}

// GetUserAssignmentStats returns the user's pending and completed counts.
func (s *AssignmentService) GetUserAssignmentStats(userID int) (AssignmentStats, error) {
	var stats AssignmentStats
	if err := s.db.Model(&models.ReviewAssignment{}).
		Where("user_id = ? AND completed = ?", userID, false).
		Count(&stats.Pending).Error; err != nil {
		return stats, err
	}
	if err := s.db.Model(&models.ReviewAssignment{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&stats.Completed).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

// HasCompletedMinimumReviews reports whether the user has finished enough
// reviews to view feedback on their own photos.
func (s *AssignmentService) HasCompletedMinimumReviews(userID int) (bool, error) {
	var count int64
	err := s.db.Model(&models.ReviewAssignment{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count >= MinimumReviewsForFeedback, err
}
