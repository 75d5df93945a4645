package service

import (
	"testing"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitQuiz_AllCorrect(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 3)

	svc := newSubmissionService(db)
	caller := Identity{UserID: student.ID, Role: model.RoleStudent}

	attempt, err := svc.SubmitQuiz(caller, quiz.ID, dto.QuizSubmitDTO{Answers: map[uint]string{
		quiz.Questions[0].ID: "A",
		quiz.Questions[1].ID: "B",
		quiz.Questions[2].ID: "C",
	}})
	require.NoError(t, err)

	assert.Equal(t, 3.0, attempt.Score)
	assert.Equal(t, 3.0, attempt.MaxScore)
	assert.Equal(t, 100.0, attempt.Percentage)
	assert.True(t, attempt.Passed)
	assert.Len(t, attempt.Answers, 3)

	var grade model.Grade
	require.NoError(t, db.Where("attempt_id = ?", attempt.ID).First(&grade).Error)
	assert.Equal(t, "Quiz: Chapter Quiz", grade.AssignmentName)
	require.NotNil(t, grade.Score)
	assert.Equal(t, 100.0, *grade.Score)
	assert.Equal(t, 100.0, grade.MaxScore)
	assert.Equal(t, "Quiz completed with 3/3 correct answers", grade.Feedback)
}

func TestSubmitQuiz_UnansweredQuestionsCountTowardMax(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 3)

	svc := newSubmissionService(db)
	caller := Identity{UserID: student.ID, Role: model.RoleStudent}

	// Answer two of three: one right, one wrong, one blank.
	attempt, err := svc.SubmitQuiz(caller, quiz.ID, dto.QuizSubmitDTO{Answers: map[uint]string{
		quiz.Questions[0].ID: "A", // correct
		quiz.Questions[1].ID: "D", // wrong, key is B
	}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, attempt.Score)
	assert.Equal(t, 3.0, attempt.MaxScore, "blank question still counts toward the maximum")
	assert.InDelta(t, 33.33, attempt.Percentage, 0.01)
	assert.False(t, attempt.Passed)

	// Blank questions must not produce answer rows.
	var answerCount int64
	require.NoError(t, db.Model(&model.QuizAnswer{}).Where("attempt_id = ?", attempt.ID).Count(&answerCount).Error)
	assert.EqualValues(t, 2, answerCount)

	var grade model.Grade
	require.NoError(t, db.Where("attempt_id = ?", attempt.ID).First(&grade).Error)
	assert.Equal(t, "Quiz completed with 1/3 correct answers", grade.Feedback)
}

func TestSubmitQuiz_InvalidLetterIgnored(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 2)

	svc := newSubmissionService(db)
	caller := Identity{UserID: student.ID, Role: model.RoleStudent}

	attempt, err := svc.SubmitQuiz(caller, quiz.ID, dto.QuizSubmitDTO{Answers: map[uint]string{
		quiz.Questions[0].ID: "E",
		quiz.Questions[1].ID: "B",
	}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, attempt.Score)
	assert.Equal(t, 2.0, attempt.MaxScore)
	assert.Len(t, attempt.Answers, 1, "an invalid letter is treated as unanswered")
}

func TestSubmitQuiz_DuplicateAttemptRejected(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 2)

	svc := newSubmissionService(db)
	caller := Identity{UserID: student.ID, Role: model.RoleStudent}
	answers := dto.QuizSubmitDTO{Answers: map[uint]string{quiz.Questions[0].ID: "A"}}

	first, err := svc.SubmitQuiz(caller, quiz.ID, answers)
	require.NoError(t, err)

	_, err = svc.SubmitQuiz(caller, quiz.ID, answers)
	var dup *DuplicateAttemptError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.ID, dup.ExistingAttemptID)

	var attemptCount int64
	require.NoError(t, db.Model(&model.QuizAttempt{}).Where("quiz_id = ?", quiz.ID).Count(&attemptCount).Error)
	assert.EqualValues(t, 1, attemptCount)
}

func TestSubmitQuiz_RequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	outsider := seedUser(t, db, "outsider", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	quiz := seedQuiz(t, db, course, 1)

	svc := newSubmissionService(db)
	_, err := svc.SubmitQuiz(Identity{UserID: outsider.ID, Role: model.RoleStudent}, quiz.ID,
		dto.QuizSubmitDTO{Answers: map[uint]string{quiz.Questions[0].ID: "A"}})
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestSubmitQuiz_InactiveQuizRejected(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 1)
	require.NoError(t, db.Model(&model.Quiz{}).Where("id = ?", quiz.ID).Update("active", false).Error)

	svc := newSubmissionService(db)
	_, err := svc.SubmitQuiz(Identity{UserID: student.ID, Role: model.RoleStudent}, quiz.ID,
		dto.QuizSubmitDTO{Answers: map[uint]string{quiz.Questions[0].ID: "A"}})
	assert.ErrorIs(t, err, ErrQuizInactive)
}

func TestGetQuizForTaking_HidesAnswerKey(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 2)

	svc := newSubmissionService(db)
	resp, err := svc.GetQuizForTaking(Identity{UserID: student.ID, Role: model.RoleStudent}, quiz.ID)
	require.NoError(t, err)

	require.Len(t, resp.Questions, 2)
	assert.Equal(t, 1, resp.Questions[0].OrderIndex)
	assert.Equal(t, 2, resp.Questions[1].OrderIndex)
}

func TestGetAttempt_Authorization(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	other := seedUser(t, db, "other", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 1)

	svc := newSubmissionService(db)
	attempt, err := svc.SubmitQuiz(Identity{UserID: student.ID, Role: model.RoleStudent}, quiz.ID,
		dto.QuizSubmitDTO{Answers: map[uint]string{quiz.Questions[0].ID: "A"}})
	require.NoError(t, err)

	// Owner reads their attempt with per-question detail.
	got, err := svc.GetAttempt(Identity{UserID: student.ID, Role: model.RoleStudent}, attempt.ID)
	require.NoError(t, err)
	require.Len(t, got.Answers, 1)
	assert.Equal(t, "A", got.Answers[0].CorrectAnswer)
	assert.True(t, got.Answers[0].IsCorrect)

	// Another student may not.
	_, err = svc.GetAttempt(Identity{UserID: other.ID, Role: model.RoleStudent}, attempt.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// The teacher may.
	_, err = svc.GetAttempt(Identity{UserID: teacher.ID, Role: model.RoleTeacher}, attempt.ID)
	assert.NoError(t, err)
}

func TestListQuizzes_AttemptedFlag(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 2)

	svc := newSubmissionService(db)
	caller := Identity{UserID: student.ID, Role: model.RoleStudent}

	summaries, err := svc.ListQuizzes(caller, course.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].QuestionCount)
	assert.False(t, summaries[0].Attempted)

	_, err = svc.SubmitQuiz(caller, quiz.ID, dto.QuizSubmitDTO{Answers: map[uint]string{quiz.Questions[0].ID: "A"}})
	require.NoError(t, err)

	summaries, err = svc.ListQuizzes(caller, course.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].Attempted)
}
