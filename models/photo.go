package models

import (
	"time"
)

// Photo lifecycle statuses
const (
	PhotoStatusPending  = "pending"
	PhotoStatusReviewed = "reviewed"
	PhotoStatusArchived = "archived"
)

type Photo struct {
	PhotoID           int       `gorm:"primaryKey;column:photo_id" json:"photo_id"`
	UserID            int       `gorm:"column:user_id;index" json:"user_id"`
	ImageURL          string    `gorm:"column:image_url" json:"image_url"`
	UploadDate        time.Time `gorm:"column:upload_date" json:"upload_date"`
	ReviewsReceived   int       `gorm:"column:reviews_received" json:"reviews_received"`
	AverageScore      *float64  `gorm:"column:average_score" json:"average_score,omitempty"`
	Status            string    `gorm:"column:status;default:pending" json:"status"`
	AllReviewsRated   bool      `gorm:"column:all_reviews_rated" json:"all_reviews_rated"`
	ReviewsRatedCount int       `gorm:"column:reviews_rated_count" json:"reviews_rated_count"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Photo) TableName() string {
	return "photos"
}
