package service

import (
	"errors"
	"fmt"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CourseService covers the catalog, course authoring and the per-role
// dashboards.
type CourseService interface {
	ListCourses(search, difficulty string) ([]dto.CourseResponseDTO, error)
	GetCourse(caller Identity, courseID uint) (*dto.CourseDetailDTO, error)
	CreateCourse(caller Identity, req dto.CourseCreateDTO) (*dto.CourseResponseDTO, error)
	AddMaterial(caller Identity, courseID uint, req dto.MaterialCreateDTO) (*dto.MaterialResponseDTO, error)
	CreateAnnouncement(caller Identity, courseID uint, req dto.AnnouncementCreateDTO) (*dto.AnnouncementResponseDTO, error)
	ListAnnouncements(caller Identity, courseID uint) ([]dto.AnnouncementResponseDTO, error)
	StudentDashboard(caller Identity) (*dto.StudentDashboardDTO, error)
	TeacherDashboard(caller Identity) (*dto.TeacherDashboardDTO, error)
}

type courseService struct {
	courseRepo       repository.CourseRepository
	enrollmentRepo   repository.EnrollmentRepository
	materialRepo     repository.MaterialRepository
	announcementRepo repository.AnnouncementRepository
	gradeRepo        repository.GradeRepository
	userRepo         repository.UserRepository
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	materialRepo repository.MaterialRepository,
	announcementRepo repository.AnnouncementRepository,
	gradeRepo repository.GradeRepository,
	userRepo repository.UserRepository,
) CourseService {
	return &courseService{
		courseRepo:       courseRepo,
		enrollmentRepo:   enrollmentRepo,
		materialRepo:     materialRepo,
		announcementRepo: announcementRepo,
		gradeRepo:        gradeRepo,
		userRepo:         userRepo,
	}
}

func (s *courseService) courseToDTO(course *model.Course) dto.CourseResponseDTO {
	enrolled, err := s.courseRepo.EnrolledCount(course.ID)
	if err != nil {
		log.Warn().Err(err).Uint("courseID", course.ID).Msg("failed to count enrollments")
	}
	return dto.CourseResponseDTO{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		Instructor:    course.Instructor,
		InstructorID:  course.InstructorID,
		DurationWeeks: course.DurationWeeks,
		Difficulty:    course.Difficulty,
		MaxStudents:   course.MaxStudents,
		EnrolledCount: int(enrolled),
		CreatedAt:     course.CreatedAt,
	}
}

func (s *courseService) ListCourses(search, difficulty string) ([]dto.CourseResponseDTO, error) {
	courses, err := s.courseRepo.Search(search, difficulty)
	if err != nil {
		return nil, fmt.Errorf("error fetching courses: %w", err)
	}

	result := make([]dto.CourseResponseDTO, 0, len(courses))
	for i := range courses {
		result = append(result, s.courseToDTO(&courses[i]))
	}
	return result, nil
}

func (s *courseService) GetCourse(caller Identity, courseID uint) (*dto.CourseDetailDTO, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}

	detail := &dto.CourseDetailDTO{CourseResponseDTO: s.courseToDTO(course)}
	if enrollment, err := s.enrollmentRepo.FindByUserAndCourse(caller.UserID, courseID); err == nil {
		detail.Enrolled = true
		detail.Progress = enrollment.Progress
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return detail, nil
}

func (s *courseService) CreateCourse(caller Identity, req dto.CourseCreateDTO) (*dto.CourseResponseDTO, error) {
	if !caller.IsTeacher() && !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	instructor, err := s.userRepo.FindByID(caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found with ID %d: %w", caller.UserID, err)
	}

	course := model.Course{
		Title:         req.Title,
		Description:   req.Description,
		Instructor:    instructor.FullName(),
		InstructorID:  caller.UserID,
		DurationWeeks: req.DurationWeeks,
		Difficulty:    req.Difficulty,
		MaxStudents:   req.MaxStudents,
	}
	if course.MaxStudents == 0 {
		course.MaxStudents = 30
	}
	if err := s.courseRepo.Create(&course); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateCourse: failed to persist course")
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	resp := s.courseToDTO(&course)
	return &resp, nil
}

// instructorOf reports whether the caller may manage the course's content.
func (s *courseService) instructorOf(caller Identity, courseID uint) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}
	if caller.IsAdmin() {
		return course, nil
	}
	if !caller.IsTeacher() || course.InstructorID != caller.UserID {
		return nil, ErrForbidden
	}
	return course, nil
}

func (s *courseService) AddMaterial(caller Identity, courseID uint, req dto.MaterialCreateDTO) (*dto.MaterialResponseDTO, error) {
	if _, err := s.instructorOf(caller, courseID); err != nil {
		return nil, err
	}

	material := model.CourseMaterial{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		FilePath:    req.FilePath,
		FileType:    req.FileType,
		UploadedBy:  caller.UserID,
	}
	if err := s.materialRepo.Create(&material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	return &dto.MaterialResponseDTO{
		ID:          material.ID,
		CourseID:    material.CourseID,
		Title:       material.Title,
		Description: material.Description,
		FileType:    material.FileType,
		CreatedAt:   material.CreatedAt,
	}, nil
}

func (s *courseService) CreateAnnouncement(caller Identity, courseID uint, req dto.AnnouncementCreateDTO) (*dto.AnnouncementResponseDTO, error) {
	if _, err := s.instructorOf(caller, courseID); err != nil {
		return nil, err
	}

	announcement := model.Announcement{
		CourseID:  courseID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: caller.UserID,
	}
	if err := s.announcementRepo.Create(&announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return announcementToDTO(&announcement), nil
}

func (s *courseService) ListAnnouncements(caller Identity, courseID uint) ([]dto.AnnouncementResponseDTO, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}

	// Enrolled students, the instructor and admins may read announcements.
	allowed := caller.IsAdmin() || course.InstructorID == caller.UserID
	if !allowed {
		if _, err := s.enrollmentRepo.FindByUserAndCourse(caller.UserID, courseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotEnrolled
			}
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
	}

	announcements, err := s.announcementRepo.FindAllByCourse(courseID)
	if err != nil {
		return nil, fmt.Errorf("error fetching announcements: %w", err)
	}
	result := make([]dto.AnnouncementResponseDTO, 0, len(announcements))
	for i := range announcements {
		result = append(result, *announcementToDTO(&announcements[i]))
	}
	return result, nil
}

func announcementToDTO(a *model.Announcement) *dto.AnnouncementResponseDTO {
	return &dto.AnnouncementResponseDTO{
		ID:        a.ID,
		CourseID:  a.CourseID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
	}
}

func (s *courseService) StudentDashboard(caller Identity) (*dto.StudentDashboardDTO, error) {
	enrollments, err := s.enrollmentRepo.FindAllByUser(caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("error fetching enrollments: %w", err)
	}
	recent, err := s.gradeRepo.FindRecentByUser(caller.UserID, 5)
	if err != nil {
		return nil, fmt.Errorf("error fetching grades: %w", err)
	}
	all, err := s.gradeRepo.FindAllByUser(caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("error fetching grades: %w", err)
	}

	dash := &dto.StudentDashboardDTO{OverallGPA: averageScore(all)}
	for i := range enrollments {
		dash.Enrollments = append(dash.Enrollments, enrollmentToDTO(&enrollments[i]))
	}
	for i := range recent {
		dash.RecentGrades = append(dash.RecentGrades, gradeToDTO(&recent[i]))
	}
	return dash, nil
}

func (s *courseService) TeacherDashboard(caller Identity) (*dto.TeacherDashboardDTO, error) {
	if !caller.IsTeacher() && !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	courses, err := s.courseRepo.FindByInstructor(caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("error fetching courses: %w", err)
	}

	dash := &dto.TeacherDashboardDTO{}
	for i := range courses {
		courseDTO := s.courseToDTO(&courses[i])
		dash.TotalStudents += int64(courseDTO.EnrolledCount)
		dash.Courses = append(dash.Courses, courseDTO)

		recent, err := s.gradeRepo.FindRecentByCourse(courses[i].ID, 3)
		if err != nil {
			log.Warn().Err(err).Uint("courseID", courses[i].ID).Msg("failed to fetch recent grades")
			continue
		}
		for j := range recent {
			dash.RecentGrades = append(dash.RecentGrades, gradeToDTO(&recent[j]))
		}
	}
	return dash, nil
}
