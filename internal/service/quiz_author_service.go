package service

import (
	"fmt"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	defaultTimeLimitMinutes = 30
	defaultPassingScore     = 70.0
)

// QuizAuthorService is the teacher-facing side of the quiz pipeline: raw text
// in, structured question bank out, plus the answer-key editing flow that
// triggers regrades.
type QuizAuthorService interface {
	CreateQuiz(caller Identity, req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error)
	GetQuizWithAnswers(caller Identity, quizID uint) (*dto.QuizResponseDTO, []dto.QuizQuestionAuthorDTO, error)
	UpdateQuestion(caller Identity, questionID uint, req dto.QuestionUpdateDTO) (*dto.QuizQuestionAuthorDTO, error)
	SetActive(caller Identity, quizID uint, active bool) error
	DeleteQuiz(caller Identity, quizID uint) error
}

type quizAuthorService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	courseRepo   repository.CourseRepository
	regrade      RegradeService
	db           *gorm.DB
}

func NewQuizAuthorService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	courseRepo repository.CourseRepository,
	regrade RegradeService,
	db *gorm.DB,
) QuizAuthorService {
	return &quizAuthorService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		courseRepo:   courseRepo,
		regrade:      regrade,
		db:           db,
	}
}

// authorizeCourse checks the caller owns the course (admins pass everywhere).
func (s *quizAuthorService) authorizeCourse(caller Identity, courseID uint) error {
	if caller.IsAdmin() {
		return nil
	}
	if !caller.IsTeacher() {
		return ErrForbidden
	}
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}
	if course.InstructorID != caller.UserID {
		return ErrForbidden
	}
	return nil
}

func (s *quizAuthorService) CreateQuiz(caller Identity, req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error) {
	if err := s.authorizeCourse(caller, req.CourseID); err != nil {
		return nil, err
	}

	parsed := ParseQuizText(req.RawText)
	if parsed.Title == "" || len(parsed.Questions) == 0 {
		return nil, ErrEmptyQuiz
	}
	for _, q := range parsed.Questions {
		if q.CorrectAnswer == "" {
			return nil, &UnanswerableQuestionError{QuestionText: q.QuestionText}
		}
	}

	timeLimit := req.TimeLimitMinutes
	if timeLimit == 0 {
		timeLimit = defaultTimeLimitMinutes
	}
	passingScore := req.PassingScore
	if passingScore == 0 {
		passingScore = defaultPassingScore
	}

	quiz := model.Quiz{
		CourseID:         req.CourseID,
		Title:            parsed.Title,
		Description:      req.Description,
		TimeLimitMinutes: timeLimit,
		PassingScore:     passingScore,
		Active:           true,
	}
	for i, q := range parsed.Questions {
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			QuestionText:  q.QuestionText,
			OptionA:       q.Options["A"],
			OptionB:       q.Options["B"],
			OptionC:       q.Options["C"],
			OptionD:       q.Options["D"],
			CorrectAnswer: q.CorrectAnswer,
			Points:        1,
			OrderIndex:    i + 1,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&quiz).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("courseID", req.CourseID).Msg("CreateQuiz: failed to persist quiz")
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	log.Info().Uint("quizID", quiz.ID).Str("title", quiz.Title).Int("questions", len(quiz.Questions)).Msg("Quiz created")
	return quizToDTO(&quiz), nil
}

func (s *quizAuthorService) GetQuizWithAnswers(caller Identity, quizID uint) (*dto.QuizResponseDTO, []dto.QuizQuestionAuthorDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if err := s.authorizeCourse(caller, quiz.CourseID); err != nil {
		return nil, nil, err
	}

	questions := make([]dto.QuizQuestionAuthorDTO, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = dto.QuizQuestionAuthorDTO{
			QuizQuestionResponseDTO: questionToDTO(&q),
			CorrectAnswer:           q.CorrectAnswer,
		}
	}
	return quizToDTO(quiz), questions, nil
}

func (s *quizAuthorService) UpdateQuestion(caller Identity, questionID uint, req dto.QuestionUpdateDTO) (*dto.QuizQuestionAuthorDTO, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, fmt.Errorf("question not found with ID %d: %w", questionID, err)
	}
	quiz, err := s.quizRepo.FindByID(question.QuizID)
	if err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", question.QuizID, err)
	}
	if err := s.authorizeCourse(caller, quiz.CourseID); err != nil {
		return nil, err
	}

	if req.CorrectAnswer == nil && req.Points == nil {
		return nil, fmt.Errorf("nothing to update on question %d", questionID)
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Points != nil {
		question.Points = *req.Points
	}

	// The edit and the regrade of every existing attempt commit together.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(question).Error; err != nil {
			return fmt.Errorf("failed to update question %d: %w", questionID, err)
		}
		return s.regrade.RegradeQuizTx(tx, question.QuizID)
	})
	if err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("UpdateQuestion: transaction failed")
		return nil, err
	}

	log.Info().Uint("questionID", questionID).Uint("quizID", question.QuizID).Msg("Question updated and attempts regraded")
	return &dto.QuizQuestionAuthorDTO{
		QuizQuestionResponseDTO: questionToDTO(question),
		CorrectAnswer:           question.CorrectAnswer,
	}, nil
}

func (s *quizAuthorService) SetActive(caller Identity, quizID uint, active bool) error {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if err := s.authorizeCourse(caller, quiz.CourseID); err != nil {
		return err
	}
	quiz.Active = active
	return s.quizRepo.Update(quiz)
}

func (s *quizAuthorService) DeleteQuiz(caller Identity, quizID uint) error {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if err := s.authorizeCourse(caller, quiz.CourseID); err != nil {
		return err
	}
	if err := s.quizRepo.Delete(quizID); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("DeleteQuiz: cascade delete failed")
		return fmt.Errorf("failed to delete quiz %d: %w", quizID, err)
	}
	return nil
}

func quizToDTO(quiz *model.Quiz) *dto.QuizResponseDTO {
	resp := &dto.QuizResponseDTO{
		ID:               quiz.ID,
		CourseID:         quiz.CourseID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		PassingScore:     quiz.PassingScore,
		Active:           quiz.Active,
		CreatedAt:        quiz.CreatedAt,
	}
	for i := range quiz.Questions {
		resp.Questions = append(resp.Questions, questionToDTO(&quiz.Questions[i]))
	}
	return resp
}

func questionToDTO(q *model.QuizQuestion) dto.QuizQuestionResponseDTO {
	return dto.QuizQuestionResponseDTO{
		ID:           q.ID,
		QuizID:       q.QuizID,
		QuestionText: q.QuestionText,
		OptionA:      q.OptionA,
		OptionB:      q.OptionB,
		OptionC:      q.OptionC,
		OptionD:      q.OptionD,
		Points:       q.Points,
		OrderIndex:   q.OrderIndex,
	}
}
