package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"photo-review-api/config"
	"photo-review-api/middleware"
	"photo-review-api/services"
	"photo-review-api/utils"
)

// Review submissions per user per window.
var reviewSubmissionLimiter = middleware.NewLimiter(10, time.Minute)

type SubmitReviewRequest struct {
	PhotoID int    `json:"photo_id" binding:"required"`
	Score   *int   `json:"score" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// SubmitReview runs the review submission pipeline. Preconditions are checked
// in a fixed order, each with its own rejection: timeout, rate limit, body
// shape, score range, comment length, active assignment, no prior review. On
// success the review is persisted pending, bookkeeping runs, and moderation
// decides the terminal status synchronously before responding.
func SubmitReview(c *gin.Context) {
	userID := c.GetInt("userID")

	strikeSvc := services.NewStrikeService(config.DB)
	timeout, err := strikeSvc.IsUserTimedOut(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check account status"})
		return
	}
	if timeout.IsTimedOut && timeout.TimeoutUntil != nil {
		daysRemaining := int(time.Until(*timeout.TimeoutUntil).Hours()/24) + 1
		c.JSON(http.StatusForbidden, gin.H{
			"error":          "You are temporarily unable to submit reviews due to repeated violations of our community guidelines.",
			"timed_out":      true,
			"timeout_until":  timeout.TimeoutUntil.Format(time.RFC3339),
			"strikes":        timeout.Strikes,
			"days_remaining": daysRemaining,
		})
		return
	}

	if allowed, resetAt := reviewSubmissionLimiter.Allow(middleware.UserKey("review", userID)); !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":    "Too many requests. Please try again later.",
			"reset_at": resetAt.Format(time.RFC3339),
		})
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: photo_id, score, comment"})
		return
	}

	if ok, msg := utils.ValidateReviewScore(*req.Score); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	comment, wordCount, err := utils.ValidateReviewComment(req.Comment)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "word_count": wordCount})
		return
	}

	assignmentSvc := services.NewAssignmentService(config.DB)
	assigned, err := assignmentSvc.IsPhotoAssignedToUser(userID, req.PhotoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check assignment"})
		return
	}
	if !assigned {
		c.JSON(http.StatusForbidden, gin.H{"error": "This photo is not assigned to you for review."})
		return
	}

	reviewSvc := services.NewReviewService(config.DB)
	alreadyReviewed, err := reviewSvc.HasReviewerReviewedPhoto(userID, req.PhotoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing reviews"})
		return
	}
	if alreadyReviewed {
		c.JSON(http.StatusForbidden, gin.H{"error": "You have already reviewed this photo."})
		return
	}

	review, err := reviewSvc.CreateReview(req.PhotoID, userID, *req.Score, comment, wordCount)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyReviewed) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You have already reviewed this photo."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review. Please try again."})
		return
	}

	reviewSvc.RegisterSubmission(review)

	moderationSvc := services.NewModerationService(config.DB, moderationClassifier(), services.NewAlertService())
	outcome := moderationSvc.ModerateReview(c.Request.Context(), review)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"review": gin.H{
			"id":         review.ReviewID,
			"score":      review.Score,
			"word_count": review.WordCount,
			"created_at": review.CreatedAt,
		},
		"message":    "Review submitted successfully",
		"moderation": outcome,
	})
}

// moderationClassifier returns the configured classifier, or nil when
// moderation is disabled. The typed-nil dance matters: a nil *GeminiClassifier
// in a non-nil interface would dodge the disabled check.
func moderationClassifier() services.Classifier {
	if classifier := services.NewGeminiClassifier(); classifier != nil {
		return classifier
	}
	return nil
}
