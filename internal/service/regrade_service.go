package service

import (
	"fmt"

	"github.com/edutrack/backend/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RegradeService recomputes every existing attempt of a quiz against the
// current question state. It runs after a teacher edits an answer key or a
// point value, and keeps the linked grade ledger rows in sync.
type RegradeService interface {
	RegradeQuiz(quizID uint) error
	// RegradeQuizTx runs the sweep inside the caller's transaction so that a
	// question edit and its regrade commit or roll back together.
	RegradeQuizTx(tx *gorm.DB, quizID uint) error
}

type regradeService struct {
	db *gorm.DB
}

func NewRegradeService(db *gorm.DB) RegradeService {
	return &regradeService{db: db}
}

func (s *regradeService) RegradeQuiz(quizID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.RegradeQuizTx(tx, quizID)
	})
}

func (s *regradeService) RegradeQuizTx(tx *gorm.DB, quizID uint) error {
	var quiz model.Quiz
	if err := tx.First(&quiz, quizID).Error; err != nil {
		return fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}

	var questions []model.QuizQuestion
	if err := tx.Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
		return fmt.Errorf("failed to load questions for quiz %d: %w", quizID, err)
	}
	questionMap := make(map[uint]model.QuizQuestion, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	var attempts []model.QuizAttempt
	if err := tx.Preload("Answers").Where("quiz_id = ?", quizID).Find(&attempts).Error; err != nil {
		return fmt.Errorf("failed to load attempts for quiz %d: %w", quizID, err)
	}

	for i := range attempts {
		attempt := &attempts[i]
		score := 0.0
		maxScore := 0.0

		// Only questions that were answered at submission time contribute to
		// the regraded denominator; blank questions never gain Answer rows
		// retroactively.
		for j := range attempt.Answers {
			answer := &attempt.Answers[j]
			question, ok := questionMap[answer.QuestionID]
			if !ok {
				log.Warn().Uint("answerID", answer.ID).Uint("questionID", answer.QuestionID).
					Msg("Regrade: answer references a question no longer on the quiz, skipping")
				continue
			}

			answer.IsCorrect = answer.SelectedAnswer == question.CorrectAnswer
			if answer.IsCorrect {
				answer.PointsEarned = question.Points
			} else {
				answer.PointsEarned = 0
			}
			score += answer.PointsEarned
			maxScore += question.Points

			if err := tx.Model(&model.QuizAnswer{}).Where("id = ?", answer.ID).
				Updates(map[string]interface{}{
					"is_correct":    answer.IsCorrect,
					"points_earned": answer.PointsEarned,
				}).Error; err != nil {
				return fmt.Errorf("failed to update answer %d: %w", answer.ID, err)
			}
		}

		percentage := 0.0
		if maxScore > 0 {
			percentage = score / maxScore * 100
		}
		passed := percentage >= quiz.PassingScore

		if err := tx.Model(&model.QuizAttempt{}).Where("id = ?", attempt.ID).
			Updates(map[string]interface{}{
				"score":      score,
				"max_score":  maxScore,
				"percentage": percentage,
				"passed":     passed,
			}).Error; err != nil {
			return fmt.Errorf("failed to update attempt %d: %w", attempt.ID, err)
		}

		// Keep the mirrored ledger row in step with the recomputed attempt.
		if err := tx.Model(&model.Grade{}).Where("attempt_id = ?", attempt.ID).
			Updates(map[string]interface{}{
				"score":    percentage,
				"feedback": fmt.Sprintf("Quiz completed with %g/%g correct answers", score, maxScore),
			}).Error; err != nil {
			return fmt.Errorf("failed to update grade for attempt %d: %w", attempt.ID, err)
		}
	}

	log.Info().Uint("quizID", quizID).Int("attempts", len(attempts)).Msg("Regrade sweep completed")
	return nil
}
