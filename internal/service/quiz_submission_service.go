package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuizSubmissionService is the student-facing side of the quiz pipeline:
// listing and taking quizzes, and reading back scored attempts.
type QuizSubmissionService interface {
	ListQuizzes(caller Identity, courseID uint) ([]dto.QuizSummaryDTO, error)
	GetQuizForTaking(caller Identity, quizID uint) (*dto.QuizResponseDTO, error)
	SubmitQuiz(caller Identity, quizID uint, req dto.QuizSubmitDTO) (*dto.QuizAttemptResponseDTO, error)
	GetAttempt(caller Identity, attemptID uint) (*dto.QuizAttemptResponseDTO, error)
}

type quizSubmissionService struct {
	quizRepo       repository.QuizRepository
	attemptRepo    repository.AttemptRepository
	enrollmentRepo repository.EnrollmentRepository
	db             *gorm.DB
}

func NewQuizSubmissionService(
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	enrollmentRepo repository.EnrollmentRepository,
	db *gorm.DB,
) QuizSubmissionService {
	return &quizSubmissionService{
		quizRepo:       quizRepo,
		attemptRepo:    attemptRepo,
		enrollmentRepo: enrollmentRepo,
		db:             db,
	}
}

func (s *quizSubmissionService) requireEnrollment(caller Identity, courseID uint) error {
	if _, err := s.enrollmentRepo.FindByUserAndCourse(caller.UserID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEnrolled
		}
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	return nil
}

func (s *quizSubmissionService) ListQuizzes(caller Identity, courseID uint) ([]dto.QuizSummaryDTO, error) {
	if err := s.requireEnrollment(caller, courseID); err != nil {
		return nil, err
	}

	quizzes, err := s.quizRepo.FindAllByCourseWithQuestionCount(courseID)
	if err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("ListQuizzes: repository error")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}

	var summaries []dto.QuizSummaryDTO
	for _, q := range quizzes {
		attempted := false
		if _, err := s.attemptRepo.FindByQuizAndUser(q.Quiz.ID, caller.UserID); err == nil {
			attempted = true
		}
		summaries = append(summaries, dto.QuizSummaryDTO{
			ID:            q.Quiz.ID,
			CourseID:      q.Quiz.CourseID,
			Title:         q.Quiz.Title,
			QuestionCount: q.QuestionCount,
			PassingScore:  q.Quiz.PassingScore,
			Active:        q.Quiz.Active,
			Attempted:     attempted,
			CreatedAt:     q.Quiz.CreatedAt,
		})
	}
	return summaries, nil
}

// GetQuizForTaking returns the quiz with its questions but without the answer
// key.
func (s *quizSubmissionService) GetQuizForTaking(caller Identity, quizID uint) (*dto.QuizResponseDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if err := s.requireEnrollment(caller, quiz.CourseID); err != nil {
		return nil, err
	}
	if !quiz.Active {
		return nil, ErrQuizInactive
	}
	return quizToDTO(quiz), nil
}

// SubmitQuiz scores one attempt. Every question counts toward the maximum;
// only answered questions produce Answer rows. The attempt, its answers and
// the mirrored grade ledger row are written in a single transaction; the
// (quiz, user) uniqueness constraint is the canonical duplicate-attempt guard.
func (s *quizSubmissionService) SubmitQuiz(caller Identity, quizID uint, req dto.QuizSubmitDTO) (*dto.QuizAttemptResponseDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if !quiz.Active {
		return nil, ErrQuizInactive
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("quiz %d has no questions, submission is not possible", quizID)
	}
	if err := s.requireEnrollment(caller, quiz.CourseID); err != nil {
		return nil, err
	}

	if existing, err := s.attemptRepo.FindByQuizAndUser(quizID, caller.UserID); err == nil {
		return nil, &DuplicateAttemptError{ExistingAttemptID: existing.ID}
	}

	now := time.Now()
	attempt := model.QuizAttempt{
		QuizID:      quizID,
		UserID:      caller.UserID,
		StartedAt:   now,
		CompletedAt: &now,
	}

	score := 0.0
	maxScore := 0.0
	for _, question := range quiz.Questions {
		maxScore += question.Points

		selected, answered := req.Answers[question.ID]
		if !answered || selected == "" {
			continue
		}
		switch selected {
		case "A", "B", "C", "D":
		default:
			log.Warn().Uint("questionID", question.ID).Str("selected", selected).
				Msg("SubmitQuiz: ignoring answer with invalid option letter")
			continue
		}

		isCorrect := selected == question.CorrectAnswer
		pointsEarned := 0.0
		if isCorrect {
			pointsEarned = question.Points
		}
		score += pointsEarned

		attempt.Answers = append(attempt.Answers, model.QuizAnswer{
			QuestionID:     question.ID,
			SelectedAnswer: selected,
			IsCorrect:      isCorrect,
			PointsEarned:   pointsEarned,
		})
	}

	attempt.Score = score
	attempt.MaxScore = maxScore
	if maxScore > 0 {
		attempt.Percentage = score / maxScore * 100
	}
	attempt.Passed = attempt.Percentage >= quiz.PassingScore

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attempt).Error; err != nil {
			return fmt.Errorf("failed to create attempt record: %w", err)
		}
		grade := model.Grade{
			UserID:         caller.UserID,
			CourseID:       quiz.CourseID,
			AssignmentName: "Quiz: " + quiz.Title,
			Score:          &attempt.Percentage,
			MaxScore:       100.0,
			Feedback:       fmt.Sprintf("Quiz completed with %g/%g correct answers", score, maxScore),
			AttemptID:      &attempt.ID,
			GradedAt:       now,
		}
		if err := tx.Create(&grade).Error; err != nil {
			return fmt.Errorf("failed to create grade record: %w", err)
		}
		return nil
	})
	if err != nil {
		// A constraint violation on (quiz_id, user_id) means a concurrent
		// submission won; surface it as the duplicate-attempt result.
		if existing, findErr := s.attemptRepo.FindByQuizAndUser(quizID, caller.UserID); findErr == nil {
			return nil, &DuplicateAttemptError{ExistingAttemptID: existing.ID}
		}
		log.Error().Err(err).Uint("quizID", quizID).Uint("userID", caller.UserID).Msg("SubmitQuiz: transaction failed")
		return nil, err
	}

	log.Info().Uint("attemptID", attempt.ID).Float64("percentage", attempt.Percentage).Bool("passed", attempt.Passed).
		Msg("Quiz attempt recorded")
	return s.attemptToDTO(&attempt, quiz), nil
}

func (s *quizSubmissionService) GetAttempt(caller Identity, attemptID uint) (*dto.QuizAttemptResponseDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(attemptID)
	if err != nil {
		return nil, fmt.Errorf("attempt not found with ID %d: %w", attemptID, err)
	}
	// Students may only read their own attempts; the quiz owner and admins
	// may read any.
	if attempt.UserID != caller.UserID && !caller.IsTeacher() && !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.attemptToDTO(attempt, &attempt.Quiz), nil
}

func (s *quizSubmissionService) attemptToDTO(attempt *model.QuizAttempt, quiz *model.Quiz) *dto.QuizAttemptResponseDTO {
	resp := &dto.QuizAttemptResponseDTO{
		ID:          attempt.ID,
		QuizID:      attempt.QuizID,
		QuizTitle:   quiz.Title,
		UserID:      attempt.UserID,
		Score:       attempt.Score,
		MaxScore:    attempt.MaxScore,
		Percentage:  attempt.Percentage,
		Passed:      attempt.Passed,
		StartedAt:   attempt.StartedAt,
		CompletedAt: attempt.CompletedAt,
	}

	questionMap := make(map[uint]model.QuizQuestion, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questionMap[q.ID] = q
	}
	for _, answer := range attempt.Answers {
		correct := answer.Question.CorrectAnswer
		if correct == "" {
			correct = questionMap[answer.QuestionID].CorrectAnswer
		}
		resp.Answers = append(resp.Answers, dto.QuizAnswerResponseDTO{
			QuestionID:     answer.QuestionID,
			SelectedAnswer: answer.SelectedAnswer,
			CorrectAnswer:  correct,
			IsCorrect:      answer.IsCorrect,
			PointsEarned:   answer.PointsEarned,
		})
	}
	return resp
}
