package repository

import (
	"github.com/edutrack/backend/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	Search(search, difficulty string) ([]model.Course, error)
	FindByInstructor(instructorID uint) ([]model.Course, error)
	EnrolledCount(courseID uint) (int64, error)
	Update(course *model.Course) error
	Count() (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) Search(search, difficulty string) ([]model.Course, error) {
	query := r.db.Model(&model.Course{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var courses []model.Course
	if err := query.Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) FindByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.Where("instructor_id = ?", instructorID).Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) EnrolledCount(courseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *courseRepository) Update(course *model.Course) error {
	return r.db.Save(course).Error
}

func (r *courseRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Course{}).Count(&count).Error
	return count, err
}
