package repository

import (
	"github.com/edutrack/backend/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByID(id uint) (*model.QuizQuestion, error)
	FindByQuizID(quizID uint) ([]model.QuizQuestion, error)
	Update(question *model.QuizQuestion) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByID(id uint) (*model.QuizQuestion, error) {
	var question model.QuizQuestion
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByQuizID(quizID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	if err := r.db.Where("quiz_id = ?", quizID).Order("order_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(question *model.QuizQuestion) error {
	return r.db.Save(question).Error
}
