package models

import (
	"time"
)

// ReviewAssignment pairs a reviewer with a photo they must critique. A pair is
// assigned at most once: a completed assignment means the user already reviewed
// the photo, so the unique index also covers the "one active assignment per
// pair" invariant under concurrent writers.
type ReviewAssignment struct {
	AssignmentID int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	UserID       int        `gorm:"column:user_id;uniqueIndex:uq_assignments_user_photo" json:"user_id"`
	PhotoID      int        `gorm:"column:photo_id;uniqueIndex:uq_assignments_user_photo" json:"photo_id"`
	Completed    bool       `gorm:"column:completed" json:"completed"`
	AssignedAt   time.Time  `gorm:"column:assigned_at" json:"assigned_at"`
	CompletedAt  *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	// Relations
	Photo Photo `gorm:"foreignKey:PhotoID" json:"photo,omitempty"`
}

func (ReviewAssignment) TableName() string {
	return "review_assignments"
}
