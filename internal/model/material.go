package model

import (
	"time"

	"gorm.io/gorm"
)

type CourseMaterial struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	FilePath    string         `json:"file_path"`
	FileType    string         `json:"file_type" gorm:"default:'document'"`
	UploadedBy  uint           `json:"uploaded_by" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// StudyProgress records a student's explicit "mark complete" action on one
// material. One row per (user, material), enforced by the unique index.
type StudyProgress struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_material"`
	MaterialID  uint           `json:"material_id" gorm:"not null;uniqueIndex:idx_progress_user_material"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	Completed   bool           `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
