package services

import (
	"time"

	"gorm.io/gorm"

	"photo-review-api/config"
	"photo-review-api/models"
)

// PhotoAnalytics summarizes a user's scoring history for the dashboard.
type PhotoAnalytics struct {
	LatestPhotoScore      *float64   `json:"latest_photo_score"`
	LatestPhotoDate       *time.Time `json:"latest_photo_date"`
	HighestScoreThisMonth *float64   `json:"highest_score_this_month"`
	HighestScoreThisYear  *float64   `json:"highest_score_this_year"`
	HighestScoreAllTime   *float64   `json:"highest_score_all_time"`
	AverageScoreOverall   *float64   `json:"average_score_overall"`
	TotalPhotos           int        `json:"total_photos"`
	TotalReviewed         int        `json:"total_reviewed"`
}

// ScoreDistribution buckets a user's reviewed photos by average score.
type ScoreDistribution struct {
	Excellent    int `json:"excellent"`     // 90-100
	Good         int `json:"good"`          // 75-89
	Average      int `json:"average"`       // 60-74
	BelowAverage int `json:"below_average"` // 40-59
	Poor         int `json:"poor"`          // 0-39
}

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	if db == nil {
		db = config.DB
	}
	return &AnalyticsService{db: db}
}

// UserPhotoAnalytics computes the user's score summary across all uploads.
func (s *AnalyticsService) UserPhotoAnalytics(userID int) (PhotoAnalytics, error) {
	var photos []models.Photo
	if err := s.db.Where("user_id = ?", userID).
		Order("upload_date DESC").
		Find(&photos).Error; err != nil {
		return PhotoAnalytics{}, err
	}

	analytics := PhotoAnalytics{TotalPhotos: len(photos)}
	if len(photos) == 0 {
		return analytics, nil
	}

	analytics.LatestPhotoScore = photos[0].AverageScore
	latestDate := photos[0].UploadDate
	analytics.LatestPhotoDate = &latestDate

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	sum := 0.0
	for _, photo := range photos {
		if photo.AverageScore == nil {
			continue
		}
		score := *photo.AverageScore
		analytics.TotalReviewed++
		sum += score

		if analytics.HighestScoreAllTime == nil || score > *analytics.HighestScoreAllTime {
			v := score
			analytics.HighestScoreAllTime = &v
		}
		if !photo.UploadDate.Before(startOfYear) {
			if analytics.HighestScoreThisYear == nil || score > *analytics.HighestScoreThisYear {
				v := score
				analytics.HighestScoreThisYear = &v
			}
		}
		if !photo.UploadDate.Before(startOfMonth) {
			if analytics.HighestScoreThisMonth == nil || score > *analytics.HighestScoreThisMonth {
				v := score
				analytics.HighestScoreThisMonth = &v
			}
		}
	}
	if analytics.TotalReviewed > 0 {
		avg := sum / float64(analytics.TotalReviewed)
		analytics.AverageScoreOverall = &avg
	}

	return analytics, nil
}

// UserScoreDistribution buckets the user's reviewed photos by average score.
func (s *AnalyticsService) UserScoreDistribution(userID int) (ScoreDistribution, error) {
	var photos []models.Photo
	if err := s.db.Where("user_id = ? AND average_score IS NOT NULL", userID).
		Find(&photos).Error; err != nil {
		return ScoreDistribution{}, err
	}

	var dist ScoreDistribution
	for _, photo := range photos {
		score := *photo.AverageScore
		switch {
		case score >= 90:
			dist.Excellent++
		case score >= 75:
			dist.Good++
		case score >= 60:
			dist.Average++
		case score >= 40:
			dist.BelowAverage++
		default:
			dist.Poor++
		}
	}

	return dist, nil
}
