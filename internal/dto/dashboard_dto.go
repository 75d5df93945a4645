package dto

type StudentDashboardDTO struct {
	Enrollments  []EnrollmentResponseDTO `json:"enrollments"`
	RecentGrades []GradeResponseDTO      `json:"recent_grades"`
	OverallGPA   float64                 `json:"overall_gpa"`
}

type TeacherDashboardDTO struct {
	Courses       []CourseResponseDTO `json:"courses"`
	TotalStudents int64               `json:"total_students"`
	RecentGrades  []GradeResponseDTO  `json:"recent_grades"`
}
