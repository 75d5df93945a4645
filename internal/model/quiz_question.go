package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizQuestion is a four-option multiple choice question. CorrectAnswer and
// Points stay mutable after creation; edits are picked up by the regrade sweep.
type QuizQuestion struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	QuizID        uint           `json:"quiz_id" gorm:"not null;index"`
	QuestionText  string         `json:"question_text" gorm:"type:text;not null"`
	OptionA       string         `json:"option_a" gorm:"not null"`
	OptionB       string         `json:"option_b" gorm:"not null"`
	OptionC       string         `json:"option_c" gorm:"not null"`
	OptionD       string         `json:"option_d" gorm:"not null"`
	CorrectAnswer string         `json:"correct_answer" gorm:"not null"` // "A", "B", "C" or "D"
	Points        float64        `json:"points" gorm:"default:1"`
	OrderIndex    int            `json:"order_index" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Option returns the stored text for an answer letter.
func (q *QuizQuestion) Option(letter string) string {
	switch letter {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	}
	return ""
}
