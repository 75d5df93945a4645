package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

// Enrollment links a student to a course. The composite unique index is the
// storage-level guard against double enrollment.
type Enrollment struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	User       User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CourseID   uint           `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Course     Course         `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Progress   float64        `json:"progress" gorm:"default:0"` // percentage 0-100
	Status     string         `json:"status" gorm:"default:'active'"`
	EnrolledAt time.Time      `json:"enrolled_at" gorm:"autoCreateTime"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
