package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Title         string         `json:"title" gorm:"not null"`
	Description   string         `json:"description" gorm:"type:text;not null"`
	Instructor    string         `json:"instructor" gorm:"not null"` // display name
	InstructorID  uint           `json:"instructor_id" gorm:"index;not null"`
	DurationWeeks int            `json:"duration_weeks" gorm:"not null"`
	Difficulty    string         `json:"difficulty" gorm:"not null"` // "Beginner", "Intermediate", "Advanced"
	MaxStudents   int            `json:"max_students" gorm:"default:30"`
	Enrollments   []Enrollment   `json:"enrollments,omitempty" gorm:"foreignKey:CourseID"`
	Materials     []CourseMaterial `json:"materials,omitempty" gorm:"foreignKey:CourseID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
