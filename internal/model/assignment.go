package model

import (
	"time"

	"gorm.io/gorm"
)

type Assignment struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	MaxScore    float64        `json:"max_score" gorm:"default:100"`
	CreatedBy   uint           `json:"created_by" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type AssignmentSubmission struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	AssignmentID uint           `json:"assignment_id" gorm:"not null;uniqueIndex:idx_submission_assignment_user"`
	UserID       uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_submission_assignment_user"`
	Content      string         `json:"content" gorm:"type:text"`
	SubmittedAt  time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
