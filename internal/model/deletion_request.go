package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

// UserDeletionRequest is a student's request to remove their own account,
// reviewed by an admin.
type UserDeletionRequest struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `json:"user_id" gorm:"not null;index"`
	Reason     string         `json:"reason" gorm:"type:text"`
	Status     string         `json:"status" gorm:"default:'PENDING'"`
	ReviewedBy *uint          `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// CourseDeletionRequest is a teacher's request to remove one of their courses.
type CourseDeletionRequest struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	RequestedBy uint           `json:"requested_by" gorm:"not null"`
	Reason      string         `json:"reason" gorm:"type:text"`
	Status      string         `json:"status" gorm:"default:'PENDING'"`
	ReviewedBy  *uint          `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
