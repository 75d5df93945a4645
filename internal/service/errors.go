package service

import (
	"errors"
	"fmt"
)

// Validation and state errors surfaced before any mutation. Controllers map
// these onto HTTP statuses; anything else is treated as a persistence failure
// whose transaction has already been rolled back.
var (
	ErrForbidden        = errors.New("caller is not allowed to perform this operation")
	ErrNotEnrolled      = errors.New("user is not enrolled in this course")
	ErrCourseFull       = errors.New("course has reached its enrollment limit")
	ErrAlreadyEnrolled  = errors.New("user is already enrolled in this course")
	ErrQuizInactive     = errors.New("quiz is not active")
	ErrEmptyQuiz        = errors.New("quiz text contains no questions")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrEmailTaken       = errors.New("email already registered")
	ErrBadCredentials   = errors.New("invalid username or password")
	ErrAlreadySubmitted = errors.New("assignment already submitted")
)

// UnanswerableQuestionError rejects authoring text that produced a question
// with no resolvable correct answer.
type UnanswerableQuestionError struct {
	QuestionText string
}

func (e *UnanswerableQuestionError) Error() string {
	return fmt.Sprintf("question %q has no correct answer", e.QuestionText)
}

// DuplicateAttemptError is the canonical "already attempted" signal, carrying
// the existing attempt so callers can redirect to its result.
type DuplicateAttemptError struct {
	ExistingAttemptID uint
}

func (e *DuplicateAttemptError) Error() string {
	return fmt.Sprintf("quiz already attempted (attempt %d)", e.ExistingAttemptID)
}
