package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"photo-review-api/config"
	"photo-review-api/models"
)

// Rating protocol failures, mapped to HTTP statuses by the controller.
var (
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrNotPhotoOwner      = errors.New("only the photo owner can rate its reviews")
	ErrReviewsNotComplete = fmt.Errorf("photo must have exactly %d approved reviews to rate", ReviewsPerPhoto)
	ErrAlreadyRated       = errors.New("reviews for this photo have already been rated")
	ErrWrongRatingCount   = fmt.Errorf("must rate all %d reviews", ReviewsPerPhoto)
	ErrScoreOutOfRange    = errors.New("all rating scores must be between 1 and 5")
	ErrReviewIDMismatch   = errors.New("review ids do not match the photo's reviews")
)

// RatingInput is one owner judgement of a single review.
type RatingInput struct {
	ReviewID              int `json:"review_id" binding:"required"`
	SpecificityScore      int `json:"specificity_score" binding:"required"`
	ConstructivenessScore int `json:"constructiveness_score" binding:"required"`
	RelevanceScore        int `json:"relevance_score" binding:"required"`
}

// RatedReviewer reveals a reviewer's identity and rating movement once the
// owner has rated their review. Withheld until this point to keep ratings
// blind.
type RatedReviewer struct {
	ReviewerID            int     `json:"reviewer_id"`
	Name                  string  `json:"name"`
	EloRating             int     `json:"elo_rating"`
	EloChange             int     `json:"elo_change"`
	SpecificityScore      int     `json:"specificity_score"`
	ConstructivenessScore int     `json:"constructiveness_score"`
	RelevanceScore        int     `json:"relevance_score"`
	OverallQuality        float64 `json:"overall_quality"`
	ReviewScore           int     `json:"review_score"`
	Comment               string  `json:"comment"`
	WordCount             int     `json:"word_count"`
	AiConfidence          int     `json:"ai_confidence"`
}

type ReviewRatingService struct {
	db *gorm.DB
}

func NewReviewRatingService(db *gorm.DB) *ReviewRatingService {
	if db == nil {
		db = config.DB
	}
	return &ReviewRatingService{db: db}
}

// RateReviews runs the quality rating protocol: the owner of a photo with
// exactly five approved reviews submits one rating per review, each with three
// 1-5 dimension scores. Ratings are persisted, each review's helpfulness
// average is refreshed, ELO deltas are accumulated per reviewer and applied,
// and the photo is marked fully rated so a second pass is rejected.
func (s *ReviewRatingService) RateReviews(raterID, photoID int, inputs []RatingInput) ([]RatedReviewer, error) {
	if len(inputs) != ReviewsPerPhoto {
		return nil, ErrWrongRatingCount
	}
	for _, in := range inputs {
		for _, score := range []int{in.SpecificityScore, in.ConstructivenessScore, in.RelevanceScore} {
			if score < 1 || score > 5 {
				return nil, ErrScoreOutOfRange
			}
		}
	}

	var photo models.Photo
	if err := s.db.Where("photo_id = ?", photoID).First(&photo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	if photo.UserID != raterID {
		return nil, ErrNotPhotoOwner
	}
	if photo.AllReviewsRated {
		return nil, ErrAlreadyRated
	}

	reviews, err := NewReviewService(s.db).ApprovedReviewsByPhoto(photoID)
	if err != nil {
		return nil, err
	}
	if len(reviews) != ReviewsPerPhoto {
		return nil, ErrReviewsNotComplete
	}

	var ratedCount int64
	if err := s.db.Model(&models.ReviewRating{}).
		Where("rated_by = ? AND photo_id = ?", raterID, photoID).
		Count(&ratedCount).Error; err != nil {
		return nil, err
	}
	if ratedCount > 0 {
		return nil, ErrAlreadyRated
	}

	reviewByID := make(map[int]models.Review, len(reviews))
	for _, review := range reviews {
		reviewByID[review.ReviewID] = review
	}
	for _, in := range inputs {
		if _, ok := reviewByID[in.ReviewID]; !ok {
			return nil, ErrReviewIDMismatch
		}
	}

	now := time.Now()
	ratings := make([]models.ReviewRating, 0, len(inputs))
	for _, in := range inputs {
		ratings = append(ratings, models.ReviewRating{
			ReviewID:              in.ReviewID,
			PhotoID:               photoID,
			RatedBy:               raterID,
			SpecificityScore:      in.SpecificityScore,
			ConstructivenessScore: in.ConstructivenessScore,
			RelevanceScore:        in.RelevanceScore,
			OverallQuality:        OverallQuality(in.SpecificityScore, in.ConstructivenessScore, in.RelevanceScore),
			CreatedAt:             now,
		})
	}
	if err := s.db.Create(&ratings).Error; err != nil {
		// Two concurrent rating passes: the unique index on
		// (rated_by, review_id) fails the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}

	for _, rating := range ratings {
		s.refreshReviewHelpfulness(rating.ReviewID)
	}

	// Accumulate deltas per reviewer: a reviewer appearing through several
	// reviews receives one combined adjustment.
	eloChanges := make(map[int]int)
	for _, rating := range ratings {
		review := reviewByID[rating.ReviewID]
		eloChanges[review.ReviewerID] += QualityEloChange(rating.OverallQuality)
	}
	eloAfter := make(map[int]int, len(eloChanges))
	for reviewerID, change := range eloChanges {
		var reviewer models.User
		if err := s.db.Where("user_id = ?", reviewerID).First(&reviewer).Error; err != nil {
			log.Printf("Failed to load reviewer %d for quality ELO update: %v", reviewerID, err)
			continue
		}
		newElo := reviewer.EloRating + change
		if err := s.db.Model(&models.User{}).
			Where("user_id = ?", reviewerID).
			Update("elo_rating", newElo).Error; err != nil {
			log.Printf("Failed to apply quality ELO change for reviewer %d: %v", reviewerID, err)
			continue
		}
		eloAfter[reviewerID] = newElo
	}

	if err := s.db.Model(&models.Photo{}).
		Where("photo_id = ?", photoID).
		Updates(map[string]interface{}{
			"all_reviews_rated":   true,
			"reviews_rated_count": len(ratings),
		}).Error; err != nil {
		log.Printf("Failed to mark photo %d as rated: %v", photoID, err)
	}

	results := make([]RatedReviewer, 0, len(ratings))
	for _, rating := range ratings {
		review := reviewByID[rating.ReviewID]

		var reviewer models.User
		if err := s.db.Where("user_id = ?", review.ReviewerID).First(&reviewer).Error; err != nil {
			log.Printf("Failed to load reviewer %d for rating response: %v", review.ReviewerID, err)
			continue
		}

		results = append(results, RatedReviewer{
			ReviewerID:            review.ReviewerID,
			Name:                  reviewer.Name,
			EloRating:             reviewer.EloRating,
			EloChange:             eloChanges[review.ReviewerID],
			SpecificityScore:      rating.SpecificityScore,
			ConstructivenessScore: rating.ConstructivenessScore,
			RelevanceScore:        rating.RelevanceScore,
			OverallQuality:        rating.OverallQuality,
			ReviewScore:           review.Score,
			Comment:               review.Comment,
			WordCount:             review.WordCount,
			AiConfidence:          review.AIAnalysis.Confidence,
		})
	}

	return results, nil
}

// refreshReviewHelpfulness stores the running average of all quality ratings a
// review has received.
func (s *ReviewRatingService) refreshReviewHelpfulness(reviewID int) {
	var ratings []models.ReviewRating
	if err := s.db.Where("review_id = ?", reviewID).Find(&ratings).Error; err != nil {
		log.Printf("Failed to load ratings for review %d: %v", reviewID, err)
		return
	}
	if len(ratings) == 0 {
		return
	}

	sum := 0.0
	for _, rating := range ratings {
		sum += rating.OverallQuality
	}
	average := sum / float64(len(ratings))

	if err := s.db.Model(&models.Review{}).
		Where("review_id = ?", reviewID).
		Updates(map[string]interface{}{
			"helpfulness_score": average,
			"helpfulness_count": len(ratings),
		}).Error; err != nil {
		log.Printf("Failed to update helpfulness for review %d: %v", reviewID, err)
	}
}

// HasUserRatedPhoto reports whether the owner already rated this photo's
// reviews.
func (s *ReviewRatingService) HasUserRatedPhoto(userID, photoID int) (bool, error) {
	var count int64
	err := s.db.Model(&models.ReviewRating{}).
		Where("rated_by = ? AND photo_id = ?", userID, photoID).
		Count(&count).Error
	return count > 0, err
}

// RatingsForPhoto returns the photo's quality ratings, newest first.
func (s *ReviewRatingService) RatingsForPhoto(photoID int) ([]models.ReviewRating, error) {
	var ratings []models.ReviewRating
	err := s.db.Where("photo_id = ?", photoID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}
