package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photo-review-api/config"
	"photo-review-api/services"
)

// GetAssignments returns the user's pending review assignments, creating a
// fresh batch when none are outstanding. An empty result is not an error:
// there may simply be no eligible photos right now.
func GetAssignments(c *gin.Context) {
	userID := c.GetInt("userID")

	svc := services.NewAssignmentService(config.DB)

	assignments, err := svc.GetPendingAssignments(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	if len(assignments) == 0 {
		assignments, err = svc.AssignPhotosToReviewer(userID, services.DefaultAssignmentBatch)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignments"})
			return
		}
		if len(assignments) == 0 {
			c.JSON(http.StatusOK, gin.H{
				"assignments": []gin.H{},
				"message":     "No photos available for review right now. Check back later!",
			})
			return
		}
	}

	details := make([]gin.H, 0, len(assignments))
	for _, assignment := range assignments {
		details = append(details, gin.H{
			"assignment_id": assignment.AssignmentID,
			"photo_id":      assignment.PhotoID,
			"assigned_at":   assignment.AssignedAt,
			"completed":     assignment.Completed,
			"photo": gin.H{
				"image_url":        assignment.Photo.ImageURL,
				"upload_date":      assignment.Photo.UploadDate,
				"reviews_received": assignment.Photo.ReviewsReceived,
			},
		})
	}

	stats, err := svc.GetUserAssignmentStats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignment stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assignments": details,
		"stats":       stats,
	})
}
