package dto

import "time"

type AssignmentCreateDTO struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	MaxScore    float64    `json:"max_score" binding:"omitempty,gt=0"`
}

type AssignmentResponseDTO struct {
	ID          uint       `json:"id"`
	CourseID    uint       `json:"course_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	MaxScore    float64    `json:"max_score"`
	Submitted   bool       `json:"submitted"`
	CreatedAt   time.Time  `json:"created_at"`
}

type SubmissionCreateDTO struct {
	Content string `json:"content" binding:"required"`
}

type SubmissionResponseDTO struct {
	ID           uint      `json:"id"`
	AssignmentID uint      `json:"assignment_id"`
	UserID       uint      `json:"user_id"`
	Content      string    `json:"content"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
