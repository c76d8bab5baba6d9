package models

import (
	"time"
)

type User struct {
	UserID         int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name           string     `gorm:"column:name" json:"name"`
	Email          string     `gorm:"column:email;unique" json:"email"`
	Password       string     `gorm:"column:password" json:"-"`
	EloRating      int        `gorm:"column:elo_rating;default:1000" json:"elo_rating"`
	TotalReviews   int        `gorm:"column:total_reviews" json:"total_reviews"`
	PhotoCount     int        `gorm:"column:photo_count" json:"photo_count"`
	Strikes        int        `gorm:"column:strikes" json:"strikes"`
	StrikeTimeout  *time.Time `gorm:"column:strike_timeout" json:"strike_timeout,omitempty"`
	LastStrikeDate *time.Time `gorm:"column:last_strike_date" json:"last_strike_date,omitempty"`
	JoinedAt       time.Time  `gorm:"column:joined_at" json:"joined_at"`
	LastUpload     *time.Time `gorm:"column:last_upload" json:"last_upload,omitempty"`
}

func (User) TableName() string {
	return "users"
}
