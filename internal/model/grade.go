package model

import (
	"time"

	"gorm.io/gorm"
)

// Grade is one labeled entry in the grade ledger, written by both manual
// teacher grading and quiz completion. AttemptID links quiz-derived rows to
// their originating attempt so the regrade sweep can keep them in sync;
// manually graded rows leave it nil.
type Grade struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"not null;index"`
	CourseID       uint           `json:"course_id" gorm:"not null;index"`
	AssignmentName string         `json:"assignment_name" gorm:"not null"`
	Score          *float64       `json:"score"` // percentage 0-100, nil until graded
	MaxScore       float64        `json:"max_score" gorm:"default:100"`
	Feedback       string         `json:"feedback" gorm:"type:text"`
	AttemptID      *uint          `json:"attempt_id,omitempty" gorm:"index"`
	GradedAt       time.Time      `json:"graded_at" gorm:"autoCreateTime"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// LetterGrade maps a percentage score onto the A-F scale.
func (g *Grade) LetterGrade() string {
	if g.Score == nil {
		return "N/A"
	}
	switch {
	case *g.Score >= 90:
		return "A"
	case *g.Score >= 80:
		return "B"
	case *g.Score >= 70:
		return "C"
	case *g.Score >= 60:
		return "D"
	default:
		return "F"
	}
}
