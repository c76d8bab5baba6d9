package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"photo-review-api/config"
	"photo-review-api/services"
)

// Maximum photo size: 10MB
const maxPhotoSize = 10 << 20

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadPhoto accepts the user's daily photo as multipart form data, stores
// the file and creates the photo record.
func UploadPhoto(c *gin.Context) {
	userID := c.GetInt("userID")

	photoSvc := services.NewPhotoService(config.DB)

	canUpload, err := photoSvc.CanUserUploadToday(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check upload status"})
		return
	}
	if !canUpload {
		c.JSON(http.StatusForbidden, gin.H{"error": "You've already uploaded a photo today. Come back tomorrow!"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo provided"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPhotoExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Please upload a JPEG, PNG, or WebP image."})
		return
	}
	if file.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 10MB."})
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}

	filename := fmt.Sprintf("%d-%s%s", userID, uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(uploadPath, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
		return
	}

	photo, err := photoSvc.CreatePhoto(userID, "/uploads/"+filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"photo": gin.H{
			"id":          photo.PhotoID,
			"image_url":   photo.ImageURL,
			"upload_date": photo.UploadDate,
		},
		"message": "Photo uploaded successfully",
	})
}

// GetMyPhotos returns the user's photo archive, newest first.
func GetMyPhotos(c *gin.Context) {
	userID := c.GetInt("userID")

	photos, err := services.NewPhotoService(config.DB).PhotosByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch photos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

// GetPhotoAnalytics returns the user's score summary and distribution.
func GetPhotoAnalytics(c *gin.Context) {
	userID := c.GetInt("userID")

	svc := services.NewAnalyticsService(config.DB)

	analytics, err := svc.UserPhotoAnalytics(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	distribution, err := svc.UserScoreDistribution(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute score distribution"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analytics":    analytics,
		"distribution": distribution,
	})
}
