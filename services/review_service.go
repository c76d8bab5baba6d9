package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"photo-review-api/config"
	"photo-review-api/models"
)

// ErrAlreadyReviewed is returned when a reviewer submits a second review for
// the same photo.
var ErrAlreadyReviewed = errors.New("review already exists for this photo")

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	if db == nil {
		db = config.DB
	}
	return &ReviewService{db: db}
}

// HasReviewerReviewedPhoto reports whether a review by this reviewer exists
// for the photo, regardless of moderation status.
func (s *ReviewService) HasReviewerReviewedPhoto(reviewerID, photoID int) (bool, error) {
	var count int64
	err := s.db.Model(&models.Review{}).
		Where("reviewer_id = ? AND photo_id = ?", reviewerID, photoID).
		Count(&count).Error
	return count > 0, err
}

// CreateReview persists a new review in pending moderation state. The unique
// index on (photo_id, reviewer_id) closes the race between two concurrent
// submissions for the same pair; the loser gets ErrAlreadyReviewed.
func (s *ReviewService) CreateReview(photoID, reviewerID, score int, comment string, wordCount int) (models.Review, error) {
	review := models.Review{
		PhotoID:          photoID,
		ReviewerID:       reviewerID,
		Score:            score,
		Comment:          comment,
		WordCount:        wordCount,
		ModerationStatus: models.ModerationStatusPending,
		CreatedAt:        time.Now(),
	}
	if err := s.db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Review{}, ErrAlreadyReviewed
		}
		return models.Review{}, err
	}
	return review, nil
}

// RegisterSubmission performs the bookkeeping that follows a persisted
// review: completes the assignment, bumps the photo's received count (flipping
// it to reviewed once full), and bumps the reviewer's lifetime count. The
// review is already durable; each failure here is logged and skipped, since
// every value is recomputable from review rows.
func (s *ReviewService) RegisterSubmission(review models.Review) {
	assignments := NewAssignmentService(s.db)
	if err := assignments.MarkAssignmentComplete(review.ReviewerID, review.PhotoID); err != nil {
		log.Printf("Failed to complete assignment (user=%d photo=%d): %v", review.ReviewerID, review.PhotoID, err)
	}

	if err := s.db.Model(&models.Photo{}).
		Where("photo_id = ?", review.PhotoID).
		Update("reviews_received", gorm.Expr("reviews_received + 1")).Error; err != nil {
		log.Printf("Failed to increment review count for photo %d: %v", review.PhotoID, err)
	}
	if err := s.db.Model(&models.Photo{}).
		Where("photo_id = ? AND reviews_received >= ? AND status = ?", review.PhotoID, ReviewsPerPhoto, models.PhotoStatusPending).
		Update("status", models.PhotoStatusReviewed).Error; err != nil {
		log.Printf("Failed to update status for photo %d: %v", review.PhotoID, err)
	}

	if err := s.db.Model(&models.User{}).
		Where("user_id = ?", review.ReviewerID).
		Update("total_reviews", gorm.Expr("total_reviews + 1")).Error; err != nil {
		log.Printf("Failed to increment review count for user %d: %v", review.ReviewerID, err)
	}
}

// ApprovedReviewsByPhoto returns the photo's approved reviews, oldest first.
func (s *ReviewService) ApprovedReviewsByPhoto(photoID int) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("photo_id = ? AND moderation_status = ?", photoID, models.ModerationStatusApproved).
		Order("created_at ASC").
		Find(&reviews).Error
	return reviews, err
}
