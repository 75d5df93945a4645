package repository

import (
	"github.com/edutrack/backend/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	FindByID(id uint) (*model.QuizAttempt, error)
	FindByIDWithDetails(id uint) (*model.QuizAttempt, error)
	FindByQuizAndUser(quizID, userID uint) (*model.QuizAttempt, error)
	FindAllByQuizWithAnswers(quizID uint) ([]model.QuizAttempt, error)
	FindAllByUser(userID uint) ([]model.QuizAttempt, error)
	Count() (int64, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) FindByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDWithDetails(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.
		Preload("Quiz").
		Preload("Answers.Question").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByQuizAndUser(quizID, userID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	if err := r.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByQuizWithAnswers(quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.Preload("Answers").Where("quiz_id = ?", quizID).Order("created_at asc").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindAllByUser(userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.Preload("Quiz").Where("user_id = ?", userID).Order("created_at desc").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.QuizAttempt{}).Count(&count).Error
	return count, err
}
