package repository

import (
	"github.com/edutrack/backend/internal/model"
	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	Create(announcement *model.Announcement) error
	FindAllByCourse(courseID uint) ([]model.Announcement, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(announcement *model.Announcement) error {
	return r.db.Create(announcement).Error
}

func (r *announcementRepository) FindAllByCourse(courseID uint) ([]model.Announcement, error) {
	var announcements []model.Announcement
	if err := r.db.Where("course_id = ?", courseID).Order("created_at desc").Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}
