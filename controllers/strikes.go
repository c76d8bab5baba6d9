package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"photo-review-api/config"
	"photo-review-api/services"
)

// GetStrikes returns the user's current strike standing.
func GetStrikes(c *gin.Context) {
	userID := c.GetInt("userID")

	status, err := services.NewStrikeService(config.DB).GetUserStrikes(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch strike status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"strikes":     status.Strikes,
		"max_strikes": services.MaxStrikes,
		"status":      status,
	})
}

// ResetStrikes clears the user's strikes and timeout. Development only.
func ResetStrikes(c *gin.Context) {
	if os.Getenv("ENVIRONMENT") == "production" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not available in production"})
		return
	}

	userID := c.GetInt("userID")

	if err := services.NewStrikeService(config.DB).ResetStrikes(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset strikes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Strikes reset",
	})
}
