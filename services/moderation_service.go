package services

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"photo-review-api/config"
	"photo-review-api/models"
)

// ModerationOutcome is returned to the submitting client. Strike fields are
// set only when the review was rejected.
type ModerationOutcome struct {
	Status       string     `json:"status"`
	Strikes      *int       `json:"strikes,omitempty"`
	IsTimedOut   *bool      `json:"is_timed_out,omitempty"`
	TimeoutUntil *time.Time `json:"timeout_until,omitempty"`
}

// GetModerationDecision applies the confidence thresholds to a classifier
// verdict. The AI-generated flag is stored but never rejects on its own; the
// default is approval.
func GetModerationDecision(analysis models.AIAnalysis) string {
	if analysis.IsOffensive && analysis.Confidence >= config.OffensiveConfidence {
		return models.ModerationStatusRejected
	}
	if !analysis.IsRelevant && analysis.Confidence >= config.IrrelevanceConfidence {
		return models.ModerationStatusRejected
	}
	return models.ModerationStatusApproved
}

type ModerationService struct {
	db         *gorm.DB
	classifier Classifier
	alerts     *AlertService
	strikes    *StrikeService
}

// NewModerationService wires the moderation pipeline. A nil classifier runs
// the pipeline with moderation disabled (every review approves).
func NewModerationService(db *gorm.DB, classifier Classifier, alerts *AlertService) *ModerationService {
	if db == nil {
		db = config.DB
	}
	return &ModerationService{
		db:         db,
		classifier: classifier,
		alerts:     alerts,
		strikes:    NewStrikeService(db),
	}
}

// ModerateReview classifies a freshly persisted review, stores the verdict and
// terminal status, and applies the side effects: a strike and possibly an
// alert on rejection, and an ELO update either way. The review's outcome is
// the core effect; strike, alert and ELO failures are logged and never
// propagated. Any failure of the moderation step itself defaults the review to
// approved so a broken classifier cannot block legitimate submissions.
func (s *ModerationService) ModerateReview(ctx context.Context, review models.Review) ModerationOutcome {
	analysis, err := s.analyze(ctx, review.Comment)
	if err != nil {
		log.Printf("Moderation failed for review %d, defaulting to approval: %v", review.ReviewID, err)
		analysis = models.AIAnalysis{
			IsRelevant: true,
			Reasoning:  "Moderation error - defaulting to approval",
		}
	}

	status := GetModerationDecision(analysis)

	if err := s.persistVerdict(review.ReviewID, status, analysis); err != nil {
		log.Printf("Failed to store moderation verdict for review %d: %v", review.ReviewID, err)
		// Fail open: a review stuck in pending blocks the photo's progress.
		synthetic := models.AIAnalysis{IsRelevant: true, Reasoning: "Moderation failed - defaulted to approval"}
		if err := s.persistVerdict(review.ReviewID, models.ModerationStatusApproved, synthetic); err != nil {
			log.Printf("Failed to approve review %d after moderation error: %v", review.ReviewID, err)
		}
		s.updateReviewerElo(review.ReviewerID, true, 0, review.WordCount)
		return ModerationOutcome{Status: models.ModerationStatusApproved}
	}

	outcome := ModerationOutcome{Status: status}

	if status == models.ModerationStatusRejected {
		if strike, err := s.strikes.AddStrike(review.ReviewerID); err != nil {
			log.Printf("Failed to add strike for reviewer %d: %v", review.ReviewerID, err)
		} else {
			outcome.Strikes = &strike.Strikes
			outcome.IsTimedOut = &strike.IsTimedOut
			outcome.TimeoutUntil = strike.TimeoutUntil
		}

		if s.alerts != nil && analysis.Confidence >= config.AlertConfidence {
			s.alerts.FileAlert(ModerationAlert{
				ReviewID:   review.ReviewID,
				PhotoID:    review.PhotoID,
				ReviewerID: review.ReviewerID,
				Reason:     rejectionReason(analysis),
				Confidence: analysis.Confidence,
				Reasoning:  analysis.Reasoning,
				ReviewText: review.Comment,
			})
		}
	}

	if status == models.ModerationStatusApproved {
		s.refreshPhotoAverage(review.PhotoID)
	}

	s.updateReviewerElo(review.ReviewerID, status == models.ModerationStatusApproved, analysis.Confidence, review.WordCount)

	return outcome
}

// refreshPhotoAverage recomputes the photo's average score from its approved
// reviews. Log-only on failure; the reconciliation utility can repair drift.
func (s *ModerationService) refreshPhotoAverage(photoID int) {
	var avg *float64
	if err := s.db.Model(&models.Review{}).
		Where("photo_id = ? AND moderation_status = ?", photoID, models.ModerationStatusApproved).
		Select("AVG(score)").
		Scan(&avg).Error; err != nil {
		log.Printf("Failed to compute average score for photo %d: %v", photoID, err)
		return
	}
	if avg == nil {
		return
	}
	if err := s.db.Model(&models.Photo{}).
		Where("photo_id = ?", photoID).
		Update("average_score", *avg).Error; err != nil {
		log.Printf("Failed to update average score for photo %d: %v", photoID, err)
	}
}

func (s *ModerationService) analyze(ctx context.Context, comment string) (models.AIAnalysis, error) {
	if s.classifier == nil {
		return models.AIAnalysis{
			IsRelevant: true,
			Reasoning:  "Moderation disabled - classifier not configured",
		}, nil
	}
	return s.classifier.Analyze(ctx, comment)
}

func (s *ModerationService) persistVerdict(reviewID int, status string, analysis models.AIAnalysis) error {
	return s.db.Model(&models.Review{}).
		Where("review_id = ?", reviewID).
		Updates(map[string]interface{}{
			"moderation_status":  status,
			"ai_is_offensive":    analysis.IsOffensive,
			"ai_is_ai_generated": analysis.IsAiGenerated,
			"ai_is_relevant":     analysis.IsRelevant,
			"ai_confidence":      analysis.Confidence,
			"ai_reasoning":       analysis.Reasoning,
		}).Error
}

// updateReviewerElo recalculates and stores the reviewer's rating. Failures
// are logged only; the review outcome stands regardless.
func (s *ModerationService) updateReviewerElo(reviewerID int, approved bool, confidence, wordCount int) {
	var reviewer models.User
	if err := s.db.Where("user_id = ?", reviewerID).First(&reviewer).Error; err != nil {
		log.Printf("Failed to load reviewer %d for ELO update: %v", reviewerID, err)
		return
	}

	newElo := CalculateNewElo(reviewer.EloRating, approved, confidence, wordCount)
	if err := s.db.Model(&models.User{}).
		Where("user_id = ?", reviewerID).
		Update("elo_rating", newElo).Error; err != nil {
		log.Printf("Failed to update ELO for reviewer %d: %v", reviewerID, err)
		return
	}
	log.Printf("ELO updated for reviewer %d: %d -> %d", reviewerID, reviewer.EloRating, newElo)
}

func rejectionReason(analysis models.AIAnalysis) string {
	switch {
	case analysis.IsOffensive:
		return "offensive"
	case !analysis.IsRelevant:
		return "irrelevant"
	default:
		return "ai-generated"
	}
}
