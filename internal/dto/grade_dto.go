package dto

import "time"

type GradeCreateDTO struct {
	AssignmentName string  `json:"assignment_name" binding:"required"`
	Score          float64 `json:"score" binding:"min=0,max=100"`
	Feedback       string  `json:"feedback"`
}

type GradeResponseDTO struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	CourseID       uint      `json:"course_id"`
	AssignmentName string    `json:"assignment_name"`
	Score          *float64  `json:"score"`
	MaxScore       float64   `json:"max_score"`
	LetterGrade    string    `json:"letter_grade"`
	Feedback       string    `json:"feedback,omitempty"`
	GradedAt       time.Time `json:"graded_at"`
}

// CourseGradesDTO groups one course's ledger rows with their average, the
// shape the grades page renders.
type CourseGradesDTO struct {
	CourseID    uint               `json:"course_id"`
	CourseTitle string             `json:"course_title"`
	Grades      []GradeResponseDTO `json:"grades"`
	Average     float64            `json:"average"`
}

type TranscriptDTO struct {
	Courses    []CourseGradesDTO `json:"courses"`
	OverallGPA float64           `json:"overall_gpa"`
}

type CertificateDTO struct {
	CertificateID string    `json:"certificate_id"`
	CourseID      uint      `json:"course_id"`
	CourseTitle   string    `json:"course_title"`
	UserID        uint      `json:"user_id"`
	AverageScore  float64   `json:"average_score"`
	IssuedAt      time.Time `json:"issued_at"`
}
