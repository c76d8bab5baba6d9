package models

import (
	"time"
)

// ReviewRating is a photo owner's blind quality judgement of one review they
// received, on three 1-5 dimensions. OverallQuality is the stored mean of the
// three. A rater rates a given review at most once.
type ReviewRating struct {
	RatingID              int       `gorm:"primaryKey;column:rating_id" json:"rating_id"`
	ReviewID              int       `gorm:"column:review_id;uniqueIndex:uq_ratings_rater_review" json:"review_id"`
	PhotoID               int       `gorm:"column:photo_id;index" json:"photo_id"`
	RatedBy               int       `gorm:"column:rated_by;uniqueIndex:uq_ratings_rater_review" json:"rated_by"`
	SpecificityScore      int       `gorm:"column:specificity_score" json:"specificity_score"`
	ConstructivenessScore int       `gorm:"column:constructiveness_score" json:"constructiveness_score"`
	RelevanceScore        int       `gorm:"column:relevance_score" json:"relevance_score"`
	OverallQuality        float64   `gorm:"column:overall_quality" json:"overall_quality"`
	CreatedAt             time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ReviewRating) TableName() string {
	return "review_ratings"
}
