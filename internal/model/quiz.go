package model

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	CourseID         uint           `json:"course_id" gorm:"not null;index"`
	Title            string         `json:"title" gorm:"not null"`
	Description      string         `json:"description,omitempty" gorm:"type:text"`
	TimeLimitMinutes int            `json:"time_limit_minutes" gorm:"default:30"`
	PassingScore     float64        `json:"passing_score" gorm:"default:70"` // percentage threshold
	Active           bool           `json:"active" gorm:"default:true"`
	Questions        []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Attempts         []QuizAttempt  `json:"attempts,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
