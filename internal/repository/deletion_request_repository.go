package repository

import (
	"github.com/edutrack/backend/internal/model"
	"gorm.io/gorm"
)

type DeletionRequestRepository interface {
	CreateUserRequest(req *model.UserDeletionRequest) error
	CreateCourseRequest(req *model.CourseDeletionRequest) error
	FindUserRequestByID(id uint) (*model.UserDeletionRequest, error)
	FindCourseRequestByID(id uint) (*model.CourseDeletionRequest, error)
	FindPendingUserRequests() ([]model.UserDeletionRequest, error)
	FindPendingCourseRequests() ([]model.CourseDeletionRequest, error)
	CountPending() (int64, error)
}

type deletionRequestRepository struct {
	db *gorm.DB
}

func NewDeletionRequestRepository(db *gorm.DB) DeletionRequestRepository {
	return &deletionRequestRepository{db: db}
}

func (r *deletionRequestRepository) CreateUserRequest(req *model.UserDeletionRequest) error {
	return r.db.Create(req).Error
}

func (r *deletionRequestRepository) CreateCourseRequest(req *model.CourseDeletionRequest) error {
	return r.db.Create(req).Error
}

func (r *deletionRequestRepository) FindUserRequestByID(id uint) (*model.UserDeletionRequest, error) {
	var req model.UserDeletionRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *deletionRequestRepository) FindCourseRequestByID(id uint) (*model.CourseDeletionRequest, error) {
	var req model.CourseDeletionRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *deletionRequestRepository) FindPendingUserRequests() ([]model.UserDeletionRequest, error) {
	var reqs []model.UserDeletionRequest
	err := r.db.Where("status = ?", model.RequestPending).Order("created_at asc").Find(&reqs).Error
	return reqs, err
}

func (r *deletionRequestRepository) FindPendingCourseRequests() ([]model.CourseDeletionRequest, error) {
	var reqs []model.CourseDeletionRequest
	err := r.db.Where("status = ?", model.RequestPending).Order("created_at asc").Find(&reqs).Error
	return reqs, err
}

func (r *deletionRequestRepository) CountPending() (int64, error) {
	var users, courses int64
	if err := r.db.Model(&model.UserDeletionRequest{}).Where("status = ?", model.RequestPending).Count(&users).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&model.CourseDeletionRequest{}).Where("status = ?", model.RequestPending).Count(&courses).Error; err != nil {
		return 0, err
	}
	return users + courses, nil
}
