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

// ProgressService tracks per-material completion and keeps the enrollment's
// completion percentage current.
type ProgressService interface {
	ListMaterials(caller Identity, courseID uint) ([]dto.MaterialResponseDTO, error)
	MarkMaterialComplete(caller Identity, materialID uint) (*dto.CourseProgressDTO, error)
	CourseProgress(caller Identity, courseID uint) (*dto.CourseProgressDTO, error)
}

type progressService struct {
	materialRepo   repository.MaterialRepository
	progressRepo   repository.ProgressRepository
	enrollmentRepo repository.EnrollmentRepository
}

func NewProgressService(
	materialRepo repository.MaterialRepository,
	progressRepo repository.ProgressRepository,
	enrollmentRepo repository.EnrollmentRepository,
) ProgressService {
	return &progressService{
		materialRepo:   materialRepo,
		progressRepo:   progressRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (s *progressService) ListMaterials(caller Identity, courseID uint) ([]dto.MaterialResponseDTO, error) {
	if _, err := s.enrollmentRepo.FindByUserAndCourse(caller.UserID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}

	materials, err := s.materialRepo.FindAllByCourse(courseID)
	if err != nil {
		return nil, fmt.Errorf("error fetching materials for course %d: %w", courseID, err)
	}
	completedIDs, err := s.progressRepo.CompletedMaterialIDs(caller.UserID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error fetching completion state: %w", err)
	}
	completed := make(map[uint]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	result := make([]dto.MaterialResponseDTO, len(materials))
	for i, m := range materials {
		result[i] = dto.MaterialResponseDTO{
			ID:          m.ID,
			CourseID:    m.CourseID,
			Title:       m.Title,
			Description: m.Description,
			FileType:    m.FileType,
			Completed:   completed[m.ID],
			CreatedAt:   m.CreatedAt,
		}
	}
	return result, nil
}

func (s *progressService) MarkMaterialComplete(caller Identity, materialID uint) (*dto.CourseProgressDTO, error) {
	material, err := s.materialRepo.FindByID(materialID)
	if err != nil {
		return nil, fmt.Errorf("material not found with ID %d: %w", materialID, err)
	}
	enrollment, err := s.enrollmentRepo.FindByUserAndCourse(caller.UserID, material.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}

	now := time.Now()
	progress, err := s.progressRepo.FindByUserAndMaterial(caller.UserID, materialID)
	switch {
	case err == nil:
		if !progress.Completed {
			progress.Completed = true
			progress.CompletedAt = &now
			if err := s.progressRepo.Update(progress); err != nil {
				return nil, fmt.Errorf("failed to update completion: %w", err)
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = &model.StudyProgress{
			UserID:      caller.UserID,
			MaterialID:  materialID,
			CourseID:    material.CourseID,
			Completed:   true,
			CompletedAt: &now,
		}
		if err := s.progressRepo.Create(progress); err != nil {
			return nil, fmt.Errorf("failed to record completion: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to look up completion: %w", err)
	}

	summary, err := s.courseProgress(caller.UserID, material.CourseID)
	if err != nil {
		return nil, err
	}

	// Mirror the percentage onto the enrollment so dashboards read one field.
	enrollment.Progress = summary.Percentage
	if summary.Percentage >= 100 {
		enrollment.Status = model.EnrollmentCompleted
	}
	if err := s.enrollmentRepo.Update(enrollment); err != nil {
		log.Error().Err(err).Uint("enrollmentID", enrollment.ID).Msg("MarkMaterialComplete: failed to refresh enrollment progress")
		return nil, fmt.Errorf("failed to refresh enrollment progress: %w", err)
	}

	return summary, nil
}

func (s *progressService) CourseProgress(caller Identity, courseID uint) (*dto.CourseProgressDTO, error) {
	if _, err := s.enrollmentRepo.FindByUserAndCourse(caller.UserID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return s.courseProgress(caller.UserID, courseID)
}

func (s *progressService) courseProgress(userID, courseID uint) (*dto.CourseProgressDTO, error) {
	total, err := s.materialRepo.CountByCourse(courseID)
	if err != nil {
		return nil, fmt.Errorf("error counting materials: %w", err)
	}
	completed, err := s.progressRepo.CountCompleted(userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error counting completions: %w", err)
	}

	// A course with no materials reports zero progress, not an error.
	percentage := 0.0
	if total > 0 {
		percentage = float64(completed) / float64(total) * 100
	}

	return &dto.CourseProgressDTO{
		CourseID:           courseID,
		TotalMaterials:     int(total),
		CompletedMaterials: int(completed),
		Percentage:         percentage,
	}, nil
}
