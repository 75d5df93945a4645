package repository

import (
	"github.com/edutrack/backend/internal/model"
	"gorm.io/gorm"
)

type ProgressRepository interface {
	Create(progress *model.StudyProgress) error
	FindByUserAndMaterial(userID, materialID uint) (*model.StudyProgress, error)
	Update(progress *model.StudyProgress) error
	CountCompleted(userID, courseID uint) (int64, error)
	CompletedMaterialIDs(userID, courseID uint) ([]uint, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Create(progress *model.StudyProgress) error {
	return r.db.Create(progress).Error
}

func (r *progressRepository) FindByUserAndMaterial(userID, materialID uint) (*model.StudyProgress, error) {
	var progress model.StudyProgress
	if err := r.db.Where("user_id = ? AND material_id = ?", userID, materialID).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) Update(progress *model.StudyProgress) error {
	return r.db.Save(progress).Error
}

func (r *progressRepository) CountCompleted(userID, courseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.StudyProgress{}).
		Where("user_id = ? AND course_id = ? AND completed = ?", userID, courseID, true).
		Count(&count).Error
	return count, err
}

func (r *progressRepository) CompletedMaterialIDs(userID, courseID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.StudyProgress{}).
		Where("user_id = ? AND course_id = ? AND completed = ?", userID, courseID, true).
		Pluck("material_id", &ids).Error
	return ids, err
}
