package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizAnswer is created once at submission and mutated only by the regrade
// sweep. Questions left blank at submission never get a row.
type QuizAnswer struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	AttemptID      uint           `json:"attempt_id" gorm:"not null;index"`
	QuestionID     uint           `json:"question_id" gorm:"not null;index"`
	Question       QuizQuestion   `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedAnswer string         `json:"selected_answer" gorm:"not null"` // "A".."D"
	IsCorrect      bool           `json:"is_correct"`
	PointsEarned   float64        `json:"points_earned"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
