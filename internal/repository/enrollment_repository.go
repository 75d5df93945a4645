package repository

import (
	"github.com/edutrack/backend/internal/model"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(enrollment *model.Enrollment) error
	FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error)
	FindAllByUser(userID uint) ([]model.Enrollment, error)
	FindAllByCourse(courseID uint) ([]model.Enrollment, error)
	Update(enrollment *model.Enrollment) error
	Count() (int64, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) FindAllByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := r.db.Preload("Course").Where("user_id = ?", userID).Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) FindAllByCourse(courseID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := r.db.Preload("User").Where("course_id = ?", courseID).Order("enrolled_at asc").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) Update(enrollment *model.Enrollment) error {
	return r.db.Save(enrollment).Error
}

func (r *enrollmentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Enrollment{}).Count(&count).Error
	return count, err
}
