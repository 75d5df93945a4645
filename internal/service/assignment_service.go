package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"gorm.io/gorm"
)

type AssignmentService interface {
	CreateAssignment(caller Identity, courseID uint, req dto.AssignmentCreateDTO) (*dto.AssignmentResponseDTO, error)
	ListAssignments(caller Identity, courseID uint) ([]dto.AssignmentResponseDTO, error)
	SubmitAssignment(caller Identity, assignmentID uint, req dto.SubmissionCreateDTO) (*dto.SubmissionResponseDTO, error)
	ListSubmissions(caller Identity, assignmentID uint) ([]dto.SubmissionResponseDTO, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	submissionRepo repository.SubmissionRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (s *assignmentService) authorizeCourse(caller Identity, courseID uint) (*model.Course, error) {
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

func (s *assignmentService) CreateAssignment(caller Identity, courseID uint, req dto.AssignmentCreateDTO) (*dto.AssignmentResponseDTO, error) {
	if _, err := s.authorizeCourse(caller, courseID); err != nil {
		return nil, err
	}

	assignment := model.Assignment{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		MaxScore:    req.MaxScore,
		CreatedBy:   caller.UserID,
	}
	if assignment.MaxScore == 0 {
		assignment.MaxScore = 100
	}
	if err := s.assignmentRepo.Create(&assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	resp := assignmentToDTO(&assignment, false)
	return &resp, nil
}

func (s *assignmentService) ListAssignments(caller Identity, courseID uint) ([]dto.AssignmentResponseDTO, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}

	if !caller.IsAdmin() && course.InstructorID != caller.UserID {
		if _, err := s.enrollmentRepo.FindByUserAndCourse(caller.UserID, courseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotEnrolled
			}
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
	}

	assignments, err := s.assignmentRepo.FindAllByCourse(courseID)
	if err != nil {
		return nil, fmt.Errorf("error fetching assignments: %w", err)
	}

	result := make([]dto.AssignmentResponseDTO, 0, len(assignments))
	for i := range assignments {
		submitted := false
		if _, err := s.submissionRepo.FindByAssignmentAndUser(assignments[i].ID, caller.UserID); err == nil {
			submitted = true
		}
		result = append(result, assignmentToDTO(&assignments[i], submitted))
	}
	return result, nil
}

// SubmitAssignment accepts one submission per student per assignment. The
// unique index on (assignment_id, user_id) is the canonical guard.
func (s *assignmentService) SubmitAssignment(caller Identity, assignmentID uint, req dto.SubmissionCreateDTO) (*dto.SubmissionResponseDTO, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, fmt.Errorf("assignment not found with ID %d: %w", assignmentID, err)
	}
	if _, err := s.enrollmentRepo.FindByUserAndCourse(caller.UserID, assignment.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if _, err := s.submissionRepo.FindByAssignmentAndUser(assignmentID, caller.UserID); err == nil {
		return nil, ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check submission: %w", err)
	}

	submission := model.AssignmentSubmission{
		AssignmentID: assignmentID,
		UserID:       caller.UserID,
		Content:      req.Content,
	}
	if err := s.submissionRepo.Create(&submission); err != nil {
		if strings.Contains(err.Error(), "idx_submission_assignment_user") || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to submit assignment: %w", err)
	}

	resp := submissionToDTO(&submission)
	return &resp, nil
}

func (s *assignmentService) ListSubmissions(caller Identity, assignmentID uint) ([]dto.SubmissionResponseDTO, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, fmt.Errorf("assignment not found with ID %d: %w", assignmentID, err)
	}
	if _, err := s.authorizeCourse(caller, assignment.CourseID); err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.FindAllByAssignment(assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching submissions: %w", err)
	}
	result := make([]dto.SubmissionResponseDTO, 0, len(submissions))
	for i := range submissions {
		result = append(result, submissionToDTO(&submissions[i]))
	}
	return result, nil
}

func assignmentToDTO(a *model.Assignment, submitted bool) dto.AssignmentResponseDTO {
	return dto.AssignmentResponseDTO{
		ID:          a.ID,
		CourseID:    a.CourseID,
		Title:       a.Title,
		Description: a.Description,
		DueDate:     a.DueDate,
		MaxScore:    a.MaxScore,
		Submitted:   submitted,
		CreatedAt:   a.CreatedAt,
	}
}

func submissionToDTO(sub *model.AssignmentSubmission) dto.SubmissionResponseDTO {
	return dto.SubmissionResponseDTO{
		ID:           sub.ID,
		AssignmentID: sub.AssignmentID,
		UserID:       sub.UserID,
		Content:      sub.Content,
		SubmittedAt:  sub.SubmittedAt,
	}
}
