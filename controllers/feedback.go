package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photo-review-api/config"
	"photo-review-api/models"
	"photo-review-api/services"
	"photo-review-api/utils"
)

// GetFeedback returns the approved reviews for one of the user's photos. The
// view is gated behind a minimum of completed reviews, and reviewer identities
// stay hidden until the owner has rated every review on the photo.
func GetFeedback(c *gin.Context) {
	userID := c.GetInt("userID")

	assignmentSvc := services.NewAssignmentService(config.DB)
	unlocked, err := assignmentSvc.HasCompletedMinimumReviews(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check review progress"})
		return
	}
	if !unlocked {
		stats, err := assignmentSvc.GetUserAssignmentStats(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check review progress"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{
			"locked":    true,
			"error":     "Complete your reviews to unlock feedback on your photos.",
			"completed": stats.Completed,
			"required":  services.MinimumReviewsForFeedback,
			"remaining": services.MinimumReviewsForFeedback - stats.Completed,
		})
		return
	}

	photoSvc := services.NewPhotoService(config.DB)

	var photo *models.Photo
	if raw := c.Query("photoId"); raw != "" {
		photoID, err := utils.ValidateID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo ID"})
			return
		}
		photo, err = photoSvc.GetPhotoByID(photoID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch photo"})
			return
		}
		if photo != nil && photo.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only view feedback on your own photos."})
			return
		}
	} else {
		photo, err = photoSvc.LatestPhotoByUser(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch photo"})
			return
		}
	}
	if photo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	reviews, err := services.NewReviewService(config.DB).ApprovedReviewsByPhoto(photo.PhotoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	feedback := make([]gin.H, 0, len(reviews))
	for _, review := range reviews {
		entry := gin.H{
			"review_id":         review.ReviewID,
			"score":             review.Score,
			"comment":           review.Comment,
			"word_count":        review.WordCount,
			"created_at":        review.CreatedAt,
			"helpfulness_score": review.HelpfulnessScore,
		}
		// Identities stay blind until every review has been rated.
		if photo.AllReviewsRated {
			var reviewer models.User
			if err := config.DB.Where("user_id = ?", review.ReviewerID).First(&reviewer).Error; err == nil {
				entry["reviewer"] = gin.H{
					"id":         reviewer.UserID,
					"name":       reviewer.Name,
					"elo_rating": reviewer.EloRating,
				}
			}
		}
		feedback = append(feedback, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"photo": gin.H{
			"id":                photo.PhotoID,
			"image_url":         photo.ImageURL,
			"upload_date":       photo.UploadDate,
			"status":            photo.Status,
			"reviews_received":  photo.ReviewsReceived,
			"average_score":     photo.AverageScore,
			"all_reviews_rated": photo.AllReviewsRated,
		},
		"reviews":          feedback,
		"ready_for_rating": !photo.AllReviewsRated && len(reviews) == services.ReviewsPerPhoto,
	})
}
