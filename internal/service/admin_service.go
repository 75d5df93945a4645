package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrRequestAlreadyReviewed = errors.New("deletion request has already been reviewed")

// AdminService is the moderation surface: platform counters, user listing and
// the deletion-request workflow. Approving a request performs the cascade
// delete in one transaction.
type AdminService interface {
	ListUsers(caller Identity) ([]dto.UserResponseDTO, error)
	Analytics(caller Identity) (*dto.AnalyticsDTO, error)
	RequestAccountDeletion(caller Identity, req dto.DeletionRequestCreateDTO) (*dto.UserDeletionRequestDTO, error)
	RequestCourseDeletion(caller Identity, courseID uint, req dto.DeletionRequestCreateDTO) (*dto.CourseDeletionRequestDTO, error)
	PendingUserRequests(caller Identity) ([]dto.UserDeletionRequestDTO, error)
	PendingCourseRequests(caller Identity) ([]dto.CourseDeletionRequestDTO, error)
	ReviewUserRequest(caller Identity, requestID uint, approve bool) (*dto.UserDeletionRequestDTO, error)
	ReviewCourseRequest(caller Identity, requestID uint, approve bool) (*dto.CourseDeletionRequestDTO, error)
}

type adminService struct {
	db             *gorm.DB
	userRepo       repository.UserRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	quizRepo       repository.QuizRepository
	attemptRepo    repository.AttemptRepository
	requestRepo    repository.DeletionRequestRepository
}

func NewAdminService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	requestRepo repository.DeletionRequestRepository,
) AdminService {
	return &adminService{
		db:             db,
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		quizRepo:       quizRepo,
		attemptRepo:    attemptRepo,
		requestRepo:    requestRepo,
	}
}

func (s *adminService) ListUsers(caller Identity) ([]dto.UserResponseDTO, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}

	result := make([]dto.UserResponseDTO, 0, len(users))
	for _, u := range users {
		result = append(result, dto.UserResponseDTO{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	return result, nil
}

func (s *adminService) Analytics(caller Identity) (*dto.AnalyticsDTO, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	analytics := &dto.AnalyticsDTO{}
	counters := []struct {
		dst   *int64
		count func() (int64, error)
	}{
		{&analytics.TotalUsers, s.userRepo.Count},
		{&analytics.TotalCourses, s.courseRepo.Count},
		{&analytics.TotalEnrollments, s.enrollmentRepo.Count},
		{&analytics.TotalQuizzes, s.quizRepo.Count},
		{&analytics.TotalAttempts, s.attemptRepo.Count},
		{&analytics.PendingRequests, s.requestRepo.CountPending},
	}
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return nil, fmt.Errorf("error computing analytics: %w", err)
		}
		*c.dst = n
	}
	return analytics, nil
}

func (s *adminService) RequestAccountDeletion(caller Identity, req dto.DeletionRequestCreateDTO) (*dto.UserDeletionRequestDTO, error) {
	request := model.UserDeletionRequest{
		UserID: caller.UserID,
		Reason: req.Reason,
		Status: model.RequestPending,
	}
	if err := s.requestRepo.CreateUserRequest(&request); err != nil {
		return nil, fmt.Errorf("failed to create deletion request: %w", err)
	}
	return userRequestToDTO(&request), nil
}

func (s *adminService) RequestCourseDeletion(caller Identity, courseID uint, req dto.DeletionRequestCreateDTO) (*dto.CourseDeletionRequestDTO, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}
	if !caller.IsAdmin() && (!caller.IsTeacher() || course.InstructorID != caller.UserID) {
		return nil, ErrForbidden
	}

	request := model.CourseDeletionRequest{
		CourseID:    courseID,
		RequestedBy: caller.UserID,
		Reason:      req.Reason,
		Status:      model.RequestPending,
	}
	if err := s.requestRepo.CreateCourseRequest(&request); err != nil {
		return nil, fmt.Errorf("failed to create deletion request: %w", err)
	}
	return courseRequestToDTO(&request), nil
}

func (s *adminService) PendingUserRequests(caller Identity) ([]dto.UserDeletionRequestDTO, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	requests, err := s.requestRepo.FindPendingUserRequests()
	if err != nil {
		return nil, fmt.Errorf("error fetching deletion requests: %w", err)
	}
	result := make([]dto.UserDeletionRequestDTO, 0, len(requests))
	for i := range requests {
		result = append(result, *userRequestToDTO(&requests[i]))
	}
	return result, nil
}

func (s *adminService) PendingCourseRequests(caller Identity) ([]dto.CourseDeletionRequestDTO, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	requests, err := s.requestRepo.FindPendingCourseRequests()
	if err != nil {
		return nil, fmt.Errorf("error fetching deletion requests: %w", err)
	}
	result := make([]dto.CourseDeletionRequestDTO, 0, len(requests))
	for i := range requests {
		result = append(result, *courseRequestToDTO(&requests[i]))
	}
	return result, nil
}

// ReviewUserRequest approves or rejects an account deletion. Approval removes
// the user and everything keyed to them.
func (s *adminService) ReviewUserRequest(caller Identity, requestID uint, approve bool) (*dto.UserDeletionRequestDTO, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	request, err := s.requestRepo.FindUserRequestByID(requestID)
	if err != nil {
		return nil, fmt.Errorf("deletion request not found with ID %d: %w", requestID, err)
	}
	if request.Status != model.RequestPending {
		return nil, ErrRequestAlreadyReviewed
	}

	now := time.Now()
	request.ReviewedBy = &caller.UserID
	request.ReviewedAt = &now
	if !approve {
		request.Status = model.RequestRejected
		if err := s.db.Save(request).Error; err != nil {
			return nil, fmt.Errorf("failed to update deletion request: %w", err)
		}
		return userRequestToDTO(request), nil
	}

	request.Status = model.RequestApproved
	err = s.db.Transaction(func(tx *gorm.DB) error {
		userID := request.UserID
		if err := tx.Where("attempt_id IN (?)",
			tx.Model(&model.QuizAttempt{}).Select("id").Where("user_id = ?", userID),
		).Delete(&model.QuizAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.QuizAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Grade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.StudyProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.AssignmentSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.User{}, userID).Error; err != nil {
			return err
		}
		return tx.Save(request).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("requestID", requestID).Msg("ReviewUserRequest: cascade delete failed")
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return userRequestToDTO(request), nil
}

// ReviewCourseRequest approves or rejects a course deletion. Approval removes
// the course with its materials, quizzes, attempts, grades and enrollments.
func (s *adminService) ReviewCourseRequest(caller Identity, requestID uint, approve bool) (*dto.CourseDeletionRequestDTO, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	request, err := s.requestRepo.FindCourseRequestByID(requestID)
	if err != nil {
		return nil, fmt.Errorf("deletion request not found with ID %d: %w", requestID, err)
	}
	if request.Status != model.RequestPending {
		return nil, ErrRequestAlreadyReviewed
	}

	now := time.Now()
	request.ReviewedBy = &caller.UserID
	request.ReviewedAt = &now
	if !approve {
		request.Status = model.RequestRejected
		if err := s.db.Save(request).Error; err != nil {
			return nil, fmt.Errorf("failed to update deletion request: %w", err)
		}
		return courseRequestToDTO(request), nil
	}

	request.Status = model.RequestApproved
	err = s.db.Transaction(func(tx *gorm.DB) error {
		courseID := request.CourseID
		quizIDs := tx.Model(&model.Quiz{}).Select("id").Where("course_id = ?", courseID)
		attemptIDs := tx.Model(&model.QuizAttempt{}).Select("id").Where("quiz_id IN (?)", quizIDs)
		if err := tx.Where("attempt_id IN (?)", attemptIDs).Delete(&model.QuizAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&model.QuizAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&model.Quiz{}).Error; err != nil {
			return err
		}
		assignmentIDs := tx.Model(&model.Assignment{}).Select("id").Where("course_id = ?", courseID)
		if err := tx.Where("assignment_id IN (?)", assignmentIDs).Delete(&model.AssignmentSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
		for _, m := range []interface{}{
			&model.Grade{}, &model.StudyProgress{}, &model.CourseMaterial{},
			&model.Announcement{}, &model.Enrollment{},
		} {
			if err := tx.Where("course_id = ?", courseID).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&model.Course{}, courseID).Error; err != nil {
			return err
		}
		return tx.Save(request).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("requestID", requestID).Msg("ReviewCourseRequest: cascade delete failed")
		return nil, fmt.Errorf("failed to delete course: %w", err)
	}
	return courseRequestToDTO(request), nil
}

func userRequestToDTO(r *model.UserDeletionRequest) *dto.UserDeletionRequestDTO {
	return &dto.UserDeletionRequestDTO{
		ID:         r.ID,
		UserID:     r.UserID,
		Reason:     r.Reason,
		Status:     r.Status,
		ReviewedBy: r.ReviewedBy,
		ReviewedAt: r.ReviewedAt,
		CreatedAt:  r.CreatedAt,
	}
}

func courseRequestToDTO(r *model.CourseDeletionRequest) *dto.CourseDeletionRequestDTO {
	return &dto.CourseDeletionRequestDTO{
		ID:          r.ID,
		CourseID:    r.CourseID,
		RequestedBy: r.RequestedBy,
		Reason:      r.Reason,
		Status:      r.Status,
		ReviewedBy:  r.ReviewedBy,
		ReviewedAt:  r.ReviewedAt,
		CreatedAt:   r.CreatedAt,
	}
}
