package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photo-review-api/config"
	"photo-review-api/services"
)

type RateReviewsRequest struct {
	PhotoID int                    `json:"photo_id" binding:"required"`
	Ratings []services.RatingInput `json:"ratings" binding:"required"`
}

// RateReviews lets a photo owner rate the quality of all five reviews their
// photo received, in one submission. The service enforces the protocol; this
// handler just maps its failures to HTTP statuses.
func RateReviews(c *gin.Context) {
	userID := c.GetInt("userID")

	var req RateReviewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: photo_id, ratings"})
		return
	}

	results, err := services.NewReviewRatingService(config.DB).RateReviews(userID, req.PhotoID, req.Ratings)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPhotoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotPhotoOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrReviewsNotComplete),
			errors.Is(err, services.ErrAlreadyRated),
			errors.Is(err, services.ErrWrongRatingCount),
			errors.Is(err, services.ErrScoreOutOfRange),
			errors.Is(err, services.ErrReviewIDMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rate reviews. Please try again."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Reviews rated successfully",
		"reviewers": results,
	})
}
