package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttempt is one student's single scored pass through a quiz. The composite
// unique index enforces the one-attempt-per-user rule at the storage layer;
// the application treats a violation as the canonical duplicate-attempt signal.
type QuizAttempt struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	QuizID      uint           `json:"quiz_id" gorm:"not null;uniqueIndex:idx_attempt_quiz_user"`
	Quiz        Quiz           `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	UserID      uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_attempt_quiz_user"`
	Score       float64        `json:"score"`
	MaxScore    float64        `json:"max_score"`
	Percentage  float64        `json:"percentage"`
	Passed      bool           `json:"passed"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Answers     []QuizAnswer   `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
