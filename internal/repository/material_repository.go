package repository

import (
	"github.com/edutrack/backend/internal/model"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(material *model.CourseMaterial) error
	FindByID(id uint) (*model.CourseMaterial, error)
	FindAllByCourse(courseID uint) ([]model.CourseMaterial, error)
	CountByCourse(courseID uint) (int64, error)
}

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(material *model.CourseMaterial) error {
	return r.db.Create(material).Error
}

func (r *materialRepository) FindByID(id uint) (*model.CourseMaterial, error) {
	var material model.CourseMaterial
	if err := r.db.First(&material, id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) FindAllByCourse(courseID uint) ([]model.CourseMaterial, error) {
	var materials []model.CourseMaterial
	if err := r.db.Where("course_id = ?", courseID).Order("created_at asc").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *materialRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.CourseMaterial{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
