package repository

import (
	"github.com/edutrack/backend/internal/model"
	"gorm.io/gorm"
)

type GradeRepository interface {
	Create(grade *model.Grade) error
	FindAllByUser(userID uint) ([]model.Grade, error)
	FindAllByUserAndCourse(userID, courseID uint) ([]model.Grade, error)
	FindRecentByUser(userID uint, limit int) ([]model.Grade, error)
	FindRecentByCourse(courseID uint, limit int) ([]model.Grade, error)
	FindByAttemptID(attemptID uint) (*model.Grade, error)
}

type gradeRepository struct {
	db *gorm.DB
}

func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) Create(grade *model.Grade) error {
	return r.db.Create(grade).Error
}

func (r *gradeRepository) FindAllByUser(userID uint) ([]model.Grade, error) {
	var grades []model.Grade
	if err := r.db.Where("user_id = ?", userID).Order("graded_at desc").Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) FindAllByUserAndCourse(userID, courseID uint) ([]model.Grade, error) {
	var grades []model.Grade
	if err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).Order("graded_at desc").Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) FindRecentByUser(userID uint, limit int) ([]model.Grade, error) {
	var grades []model.Grade
	if err := r.db.Where("user_id = ?", userID).Order("graded_at desc").Limit(limit).Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) FindRecentByCourse(courseID uint, limit int) ([]model.Grade, error) {
	var grades []model.Grade
	if err := r.db.Where("course_id = ?", courseID).Order("graded_at desc").Limit(limit).Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) FindByAttemptID(attemptID uint) (*model.Grade, error) {
	var grade model.Grade
	if err := r.db.Where("attempt_id = ?", attemptID).First(&grade).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}
