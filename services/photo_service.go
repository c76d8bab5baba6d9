package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"photo-review-api/config"
	"photo-review-api/models"
)

type PhotoService struct {
	db *gorm.DB
}

func NewPhotoService(db *gorm.DB) *PhotoService {
	if db == nil {
		db = config.DB
	}
	return &PhotoService{db: db}
}

// CanUserUploadToday enforces the one-photo-per-day rule against the user's
// recorded last upload.
func (s *PhotoService) CanUserUploadToday(userID int) (bool, error) {
	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return false, err
	}
	if user.LastUpload == nil {
		return true, nil
	}

	now := time.Now()
	last := user.LastUpload.In(now.Location())
	return !(last.Year() == now.Year() && last.YearDay() == now.YearDay()), nil
}

// CreatePhoto persists a new photo row and bumps the owner's photo count and
// last-upload stamp. The counter updates are secondary bookkeeping.
func (s *PhotoService) CreatePhoto(userID int, imageURL string) (models.Photo, error) {
	now := time.Now()
	photo := models.Photo{
		UserID:     userID,
		ImageURL:   imageURL,
		UploadDate: now,
		Status:     models.PhotoStatusPending,
	}
	if err := s.db.Create(&photo).Error; err != nil {
		return models.Photo{}, err
	}

	if err := s.db.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"photo_count": gorm.Expr("photo_count + 1"),
			"last_upload": now,
		}).Error; err != nil {
		log.Printf("Failed to update photo count for user %d: %v", userID, err)
	}

	return photo, nil
}

// GetPhotoByID loads a single photo.
func (s *PhotoService) GetPhotoByID(photoID int) (*models.Photo, error) {
	var photo models.Photo
	if err := s.db.Where("photo_id = ?", photoID).First(&photo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

// LatestPhotoByUser returns the user's most recent upload, or nil if they have
// none.
func (s *PhotoService) LatestPhotoByUser(userID int) (*models.Photo, error) {
	var photo models.Photo
	err := s.db.Where("user_id = ?", userID).
		Order("upload_date DESC").
		First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

// PhotosByUser returns all of the user's photos, newest first.
func (s *PhotoService) PhotosByUser(userID int) ([]models.Photo, error) {
	var photos []models.Photo
	err := s.db.Where("user_id = ?", userID).
		Order("upload_date DESC").
		Find(&photos).Error
	return photos, err
}
