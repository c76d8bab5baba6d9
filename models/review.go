package models

import (
	"time"
)

// Review moderation statuses. Pending is transient; approved and rejected are terminal.
const (
	ModerationStatusPending  = "pending"
	ModerationStatusApproved = "approved"
	ModerationStatusRejected = "rejected"
)

// AIAnalysis is the classifier verdict snapshot stored on each review.
type AIAnalysis struct {
	IsOffensive   bool   `gorm:"column:is_offensive" json:"is_offensive"`
	IsAiGenerated bool   `gorm:"column:is_ai_generated" json:"is_ai_generated"`
	IsRelevant    bool   `gorm:"column:is_relevant" json:"is_relevant"`
	Confidence    int    `gorm:"column:confidence" json:"confidence"`
	Reasoning     string `gorm:"column:reasoning" json:"reasoning"`
}

type Review struct {
	ReviewID int `gorm:"primaryKey;column:review_id" json:"review_id"`
	// One review per (photo, reviewer) pair, enforced by the database rather
	// than only by the pre-insert check (two concurrent submissions would
	// otherwise both pass the check).
	PhotoID          int        `gorm:"column:photo_id;uniqueIndex:uq_reviews_photo_reviewer" json:"photo_id"`
	ReviewerID       int        `gorm:"column:reviewer_id;uniqueIndex:uq_reviews_photo_reviewer" json:"reviewer_id"`
	Score            int        `gorm:"column:score" json:"score"`
	Comment          string     `gorm:"column:comment;type:text" json:"comment"`
	WordCount        int        `gorm:"column:word_count" json:"word_count"`
	ModerationStatus string     `gorm:"column:moderation_status;default:pending" json:"moderation_status"`
	AIAnalysis       AIAnalysis `gorm:"embedded;embeddedPrefix:ai_" json:"ai_analysis"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	HelpfulnessScore *float64   `gorm:"column:helpfulness_score" json:"helpfulness_score,omitempty"`
	HelpfulnessCount int        `gorm:"column:helpfulness_count" json:"helpfulness_count"`

	// Relations
	Photo    Photo `gorm:"foreignKey:PhotoID" json:"photo,omitempty"`
	Reviewer User  `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
