package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type EnrollmentService interface {
	Enroll(caller Identity, courseID uint) (*dto.EnrollmentResponseDTO, error)
	MyEnrollments(caller Identity) ([]dto.EnrollmentResponseDTO, error)
	CourseRoster(caller Identity, courseID uint) ([]dto.RosterEntryDTO, error)
}

type enrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
}

func NewEnrollmentService(
	enrollmentRepo repository.EnrollmentRepository,
	courseRepo repository.CourseRepository,
) EnrollmentService {
	return &enrollmentService{enrollmentRepo: enrollmentRepo, courseRepo: courseRepo}
}

func enrollmentToDTO(e *model.Enrollment) dto.EnrollmentResponseDTO {
	return dto.EnrollmentResponseDTO{
		ID:          e.ID,
		UserID:      e.UserID,
		CourseID:    e.CourseID,
		CourseTitle: e.Course.Title,
		Progress:    e.Progress,
		Status:      e.Status,
		EnrolledAt:  e.EnrolledAt,
	}
}

// Enroll adds the caller to a course. The unique index on (user_id, course_id)
// is the canonical duplicate guard; the pre-check only gives a friendlier
// answer on the common path.
func (s *enrollmentService) Enroll(caller Identity, courseID uint) (*dto.EnrollmentResponseDTO, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}

	if _, err := s.enrollmentRepo.FindByUserAndCourse(caller.UserID, courseID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}

	enrolled, err := s.courseRepo.EnrolledCount(courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}
	if course.MaxStudents > 0 && enrolled >= int64(course.MaxStudents) {
		return nil, ErrCourseFull
	}

	enrollment := model.Enrollment{
		UserID:   caller.UserID,
		CourseID: courseID,
		Status:   model.EnrollmentActive,
	}
	if err := s.enrollmentRepo.Create(&enrollment); err != nil {
		if strings.Contains(err.Error(), "idx_enrollment_user_course") || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		log.Error().Err(err).Uint("userID", caller.UserID).Uint("courseID", courseID).Msg("Enroll: failed to create enrollment")
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}

	enrollment.Course = *course
	resp := enrollmentToDTO(&enrollment)
	return &resp, nil
}

func (s *enrollmentService) MyEnrollments(caller Identity) ([]dto.EnrollmentResponseDTO, error) {
	enrollments, err := s.enrollmentRepo.FindAllByUser(caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("error fetching enrollments: %w", err)
	}

	result := make([]dto.EnrollmentResponseDTO, 0, len(enrollments))
	for i := range enrollments {
		result = append(result, enrollmentToDTO(&enrollments[i]))
	}
	return result, nil
}

// CourseRoster lists the students enrolled in a course. Only the owning
// instructor or an admin may read it.
func (s *enrollmentService) CourseRoster(caller Identity, courseID uint) ([]dto.RosterEntryDTO, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}
	if !caller.IsAdmin() && course.InstructorID != caller.UserID {
		return nil, ErrForbidden
	}

	enrollments, err := s.enrollmentRepo.FindAllByCourse(courseID)
	if err != nil {
		return nil, fmt.Errorf("error fetching roster: %w", err)
	}

	roster := make([]dto.RosterEntryDTO, 0, len(enrollments))
	for _, e := range enrollments {
		roster = append(roster, dto.RosterEntryDTO{
			UserID:     e.UserID,
			Username:   e.User.Username,
			FullName:   e.User.FullName(),
			Email:      e.User.Email,
			Progress:   e.Progress,
			Status:     e.Status,
			EnrolledAt: e.EnrolledAt,
		})
	}
	return roster, nil
}
