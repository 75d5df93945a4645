package dto

import "time"

type CourseCreateDTO struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	DurationWeeks int    `json:"duration_weeks" binding:"required,min=1"`
	Difficulty    string `json:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced"`
	MaxStudents   int    `json:"max_students" binding:"omitempty,min=1"`
}

type CourseResponseDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Instructor    string    `json:"instructor"`
	InstructorID  uint      `json:"instructor_id"`
	DurationWeeks int       `json:"duration_weeks"`
	Difficulty    string    `json:"difficulty"`
	MaxStudents   int       `json:"max_students"`
	EnrolledCount int       `json:"enrolled_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// CourseDetailDTO adds the caller's enrollment state to the course view.
type CourseDetailDTO struct {
	CourseResponseDTO
	Enrolled bool    `json:"enrolled"`
	Progress float64 `json:"progress"`
}

type EnrollmentResponseDTO struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	CourseID    uint      `json:"course_id"`
	CourseTitle string    `json:"course_title,omitempty"`
	Progress    float64   `json:"progress"`
	Status      string    `json:"status"`
	EnrolledAt  time.Time `json:"enrolled_at"`
}

// RosterEntryDTO is one enrolled student as seen by the course instructor.
type RosterEntryDTO struct {
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Progress   float64   `json:"progress"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type MaterialCreateDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	FilePath    string `json:"file_path"`
	FileType    string `json:"file_type"`
}

type MaterialResponseDTO struct {
	ID          uint      `json:"id"`
	CourseID    uint      `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	FileType    string    `json:"file_type"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type AnnouncementCreateDTO struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type AnnouncementResponseDTO struct {
	ID        uint      `json:"id"`
	CourseID  uint      `json:"course_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CourseProgressDTO struct {
	CourseID           uint    `json:"course_id"`
	TotalMaterials     int     `json:"total_materials"`
	CompletedMaterials int     `json:"completed_materials"`
	Percentage         float64 `json:"percentage"`
}
