package dto

import "time"

// QuizCreateDTO carries the raw authoring text; the question bank parser turns
// it into structured questions before anything is persisted.
type QuizCreateDTO struct {
	CourseID         uint    `json:"course_id" binding:"required"`
	Description      string  `json:"description"`
	RawText          string  `json:"raw_text" binding:"required"`
	TimeLimitMinutes int     `json:"time_limit_minutes" binding:"omitempty,min=1"`
	PassingScore     float64 `json:"passing_score" binding:"omitempty,min=0,max=100"`
}

// QuestionUpdateDTO is the answer-key editing flow. Changing either field on a
// quiz with existing attempts triggers a regrade of all of them.
type QuestionUpdateDTO struct {
	CorrectAnswer *string  `json:"correct_answer" binding:"omitempty,oneof=A B C D"`
	Points        *float64 `json:"points" binding:"omitempty,gt=0"`
}

type QuizQuestionResponseDTO struct {
	ID           uint    `json:"id"`
	QuizID       uint    `json:"quiz_id"`
	QuestionText string  `json:"question_text"`
	OptionA      string  `json:"option_a"`
	OptionB      string  `json:"option_b"`
	OptionC      string  `json:"option_c"`
	OptionD      string  `json:"option_d"`
	Points       float64 `json:"points"`
	OrderIndex   int     `json:"order_index"`
}

// QuizQuestionAuthorDTO is the teacher view, answer key included.
type QuizQuestionAuthorDTO struct {
	QuizQuestionResponseDTO
	CorrectAnswer string `json:"correct_answer"`
}

type QuizResponseDTO struct {
	ID               uint                      `json:"id"`
	CourseID         uint                      `json:"course_id"`
	Title            string                    `json:"title"`
	Description      string                    `json:"description,omitempty"`
	TimeLimitMinutes int                       `json:"time_limit_minutes"`
	PassingScore     float64                   `json:"passing_score"`
	Active           bool                      `json:"active"`
	Questions        []QuizQuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
}

type QuizSummaryDTO struct {
	ID            uint      `json:"id"`
	CourseID      uint      `json:"course_id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"question_count"`
	PassingScore  float64   `json:"passing_score"`
	Active        bool      `json:"active"`
	Attempted     bool      `json:"attempted"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizSubmitDTO maps question id to the selected letter. Unanswered questions
// are simply absent from the map.
type QuizSubmitDTO struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

type QuizAnswerResponseDTO struct {
	QuestionID     uint    `json:"question_id"`
	SelectedAnswer string  `json:"selected_answer"`
	CorrectAnswer  string  `json:"correct_answer"`
	IsCorrect      bool    `json:"is_correct"`
	PointsEarned   float64 `json:"points_earned"`
}

type QuizAttemptResponseDTO struct {
	ID          uint                    `json:"id"`
	QuizID      uint                    `json:"quiz_id"`
	QuizTitle   string                  `json:"quiz_title"`
	UserID      uint                    `json:"user_id"`
	Score       float64                 `json:"score"`
	MaxScore    float64                 `json:"max_score"`
	Percentage  float64                 `json:"percentage"`
	Passed      bool                    `json:"passed"`
	StartedAt   time.Time               `json:"started_at"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
	Answers     []QuizAnswerResponseDTO `json:"answers,omitempty"`
}
