package dto

import "time"

type DeletionRequestCreateDTO struct {
	Reason string `json:"reason" binding:"required"`
}

type DeletionRequestReviewDTO struct {
	Approve bool `json:"approve"`
}

type UserDeletionRequestDTO struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"user_id"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	ReviewedBy *uint      `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type CourseDeletionRequestDTO struct {
	ID          uint       `json:"id"`
	CourseID    uint       `json:"course_id"`
	RequestedBy uint       `json:"requested_by"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	ReviewedBy  *uint      `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AnalyticsDTO is the admin dashboard's headline counters.
type AnalyticsDTO struct {
	TotalUsers       int64 `json:"total_users"`
	TotalCourses     int64 `json:"total_courses"`
	TotalEnrollments int64 `json:"total_enrollments"`
	TotalQuizzes     int64 `json:"total_quizzes"`
	TotalAttempts    int64 `json:"total_attempts"`
	PendingRequests  int64 `json:"pending_requests"`
}
