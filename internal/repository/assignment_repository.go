package repository

import (
	"github.com/edutrack/backend/internal/model"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(assignment *model.Assignment) error
	FindByID(id uint) (*model.Assignment, error)
	FindAllByCourse(courseID uint) ([]model.Assignment, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *model.Assignment) error {
	return r.db.Create(assignment).Error
}

func (r *assignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := r.db.First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindAllByCourse(courseID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	if err := r.db.Where("course_id = ?", courseID).Order("created_at asc").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

type SubmissionRepository interface {
	Create(submission *model.AssignmentSubmission) error
	FindByAssignmentAndUser(assignmentID, userID uint) (*model.AssignmentSubmission, error)
	FindAllByAssignment(assignmentID uint) ([]model.AssignmentSubmission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.AssignmentSubmission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) FindByAssignmentAndUser(assignmentID, userID uint) (*model.AssignmentSubmission, error) {
	var submission model.AssignmentSubmission
	if err := r.db.Where("assignment_id = ? AND user_id = ?", assignmentID, userID).First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) FindAllByAssignment(assignmentID uint) ([]model.AssignmentSubmission, error) {
	var submissions []model.AssignmentSubmission
	if err := r.db.Where("assignment_id = ?", assignmentID).Order("submitted_at asc").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
