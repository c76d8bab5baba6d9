package services

import (
	"log"

	"gorm.io/gorm"

	"photo-review-api/config"
	"photo-review-api/models"
)

// ReviewCountFix records one corrected photo for the reconciliation report.
type ReviewCountFix struct {
	PhotoID        int      `json:"photo_id"`
	ReviewsBefore  int      `json:"reviews_before"`
	ReviewsAfter   int      `json:"reviews_after"`
	AvgScoreBefore *float64 `json:"avg_score_before,omitempty"`
	AvgScoreAfter  *float64 `json:"avg_score_after,omitempty"`
}

// ReconcileService repairs drifted photo aggregates. Review rows are the
// source of truth; reviews_received and average_score are recomputed from the
// approved reviews of each photo. This is the repair path for the
// no-transactions write sequence: a crash between the review insert and the
// counter update leaves drift this service can always correct.
type ReconcileService struct {
	db *gorm.DB
}

func NewReconcileService(db *gorm.DB) *ReconcileService {
	if db == nil {
		db = config.DB
	}
	return &ReconcileService{db: db}
}

// FixReviewCounts rewrites every photo whose stored aggregates disagree with
// its approved review rows and reports what changed.
func (s *ReconcileService) FixReviewCounts() ([]ReviewCountFix, error) {
	var photos []models.Photo
	if err := s.db.Find(&photos).Error; err != nil {
		return nil, err
	}

	fixes := make([]ReviewCountFix, 0)
	for _, photo := range photos {
		var reviews []models.Review
		if err := s.db.Where("photo_id = ? AND moderation_status = ?", photo.PhotoID, models.ModerationStatusApproved).
			Find(&reviews).Error; err != nil {
			return nil, err
		}

		count := len(reviews)
		var average *float64
		if count > 0 {
			sum := 0
			for _, review := range reviews {
				sum += review.Score
			}
			avg := float64(sum) / float64(count)
			average = &avg
		}

		if photo.ReviewsReceived == count && floatPtrEqual(photo.AverageScore, average) {
			continue
		}

		if err := s.db.Model(&models.Photo{}).
			Where("photo_id = ?", photo.PhotoID).
			Updates(map[string]interface{}{
				"reviews_received": count,
				"average_score":    average,
			}).Error; err != nil {
			return nil, err
		}

		fixes = append(fixes, ReviewCountFix{
			PhotoID:        photo.PhotoID,
			ReviewsBefore:  photo.ReviewsReceived,
			ReviewsAfter:   count,
			AvgScoreBefore: photo.AverageScore,
			AvgScoreAfter:  average,
		})
		log.Printf("Reconciled photo %d: reviews %d -> %d", photo.PhotoID, photo.ReviewsReceived, count)
	}

	return fixes, nil
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
