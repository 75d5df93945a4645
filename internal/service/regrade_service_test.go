package service

import (
	"testing"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitAttempt(t *testing.T, svc QuizSubmissionService, student model.User, quiz model.Quiz, answers map[uint]string) *dto.QuizAttemptResponseDTO {
	t.Helper()
	attempt, err := svc.SubmitQuiz(Identity{UserID: student.ID, Role: model.RoleStudent}, quiz.ID, dto.QuizSubmitDTO{Answers: answers})
	require.NoError(t, err)
	return attempt
}

func TestRegradeQuiz_AnswerKeyChange(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 2) // keys A, B

	subSvc := newSubmissionService(db)
	attempt := submitAttempt(t, subSvc, student, quiz, map[uint]string{
		quiz.Questions[0].ID: "A", // correct
		quiz.Questions[1].ID: "C", // wrong under key B
	})
	assert.Equal(t, 1.0, attempt.Score)

	// The second question's key changes to C; the wrong answer becomes right.
	require.NoError(t, db.Model(&model.QuizQuestion{}).
		Where("id = ?", quiz.Questions[1].ID).Update("correct_answer", "C").Error)
	require.NoError(t, NewRegradeService(db).RegradeQuiz(quiz.ID))

	var reloaded model.QuizAttempt
	require.NoError(t, db.First(&reloaded, attempt.ID).Error)
	assert.Equal(t, 2.0, reloaded.Score)
	assert.Equal(t, 2.0, reloaded.MaxScore)
	assert.Equal(t, 100.0, reloaded.Percentage)
	assert.True(t, reloaded.Passed)

	var answer model.QuizAnswer
	require.NoError(t, db.Where("attempt_id = ? AND question_id = ?", attempt.ID, quiz.Questions[1].ID).First(&answer).Error)
	assert.True(t, answer.IsCorrect)
	assert.Equal(t, 1.0, answer.PointsEarned)

	var grade model.Grade
	require.NoError(t, db.Where("attempt_id = ?", attempt.ID).First(&grade).Error)
	require.NotNil(t, grade.Score)
	assert.Equal(t, 100.0, *grade.Score)
	assert.Equal(t, "Quiz completed with 2/2 correct answers", grade.Feedback)
}

func TestRegradeQuiz_AnsweredOnlyDenominator(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 3) // keys A, B, C

	subSvc := newSubmissionService(db)
	attempt := submitAttempt(t, subSvc, student, quiz, map[uint]string{
		quiz.Questions[0].ID: "A", // correct, third question left blank
		quiz.Questions[1].ID: "B", // correct
	})
	assert.Equal(t, 3.0, attempt.MaxScore, "submission-time maximum covers every question")

	require.NoError(t, NewRegradeService(db).RegradeQuiz(quiz.ID))

	var reloaded model.QuizAttempt
	require.NoError(t, db.First(&reloaded, attempt.ID).Error)
	assert.Equal(t, 2.0, reloaded.Score)
	assert.Equal(t, 2.0, reloaded.MaxScore, "regrade denominator covers only answered questions")
	assert.Equal(t, 100.0, reloaded.Percentage)

	// The blank question gains no answer row retroactively.
	var answerCount int64
	require.NoError(t, db.Model(&model.QuizAnswer{}).Where("attempt_id = ?", attempt.ID).Count(&answerCount).Error)
	assert.EqualValues(t, 2, answerCount)
}

func TestRegradeQuiz_PointsChange(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 2) // keys A, B

	subSvc := newSubmissionService(db)
	attempt := submitAttempt(t, subSvc, student, quiz, map[uint]string{
		quiz.Questions[0].ID: "A",
		quiz.Questions[1].ID: "A",
	})
	assert.Equal(t, 50.0, attempt.Percentage)

	require.NoError(t, db.Model(&model.QuizQuestion{}).
		Where("id = ?", quiz.Questions[0].ID).Update("points", 3.0).Error)
	require.NoError(t, NewRegradeService(db).RegradeQuiz(quiz.ID))

	var reloaded model.QuizAttempt
	require.NoError(t, db.First(&reloaded, attempt.ID).Error)
	assert.Equal(t, 3.0, reloaded.Score)
	assert.Equal(t, 4.0, reloaded.MaxScore)
	assert.Equal(t, 75.0, reloaded.Percentage)
	assert.True(t, reloaded.Passed)
}

func TestRegradeQuiz_Idempotent(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 2)

	subSvc := newSubmissionService(db)
	attempt := submitAttempt(t, subSvc, student, quiz, map[uint]string{
		quiz.Questions[0].ID: "A",
		quiz.Questions[1].ID: "C",
	})

	regrade := NewRegradeService(db)
	require.NoError(t, regrade.RegradeQuiz(quiz.ID))

	var first model.QuizAttempt
	require.NoError(t, db.First(&first, attempt.ID).Error)

	require.NoError(t, regrade.RegradeQuiz(quiz.ID))

	var second model.QuizAttempt
	require.NoError(t, db.First(&second, attempt.ID).Error)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.MaxScore, second.MaxScore)
	assert.Equal(t, first.Percentage, second.Percentage)
	assert.Equal(t, first.Passed, second.Passed)
}

func TestUpdateQuestion_EditAndRegradeCommitTogether(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 2) // keys A, B

	subSvc := newSubmissionService(db)
	attempt := submitAttempt(t, subSvc, student, quiz, map[uint]string{
		quiz.Questions[0].ID: "A",
		quiz.Questions[1].ID: "D",
	})
	assert.Equal(t, 1.0, attempt.Score)

	authorSvc := newAuthorService(db)
	newKey := "D"
	updated, err := authorSvc.UpdateQuestion(Identity{UserID: teacher.ID, Role: model.RoleTeacher},
		quiz.Questions[1].ID, dto.QuestionUpdateDTO{CorrectAnswer: &newKey})
	require.NoError(t, err)
	assert.Equal(t, "D", updated.CorrectAnswer)

	var reloaded model.QuizAttempt
	require.NoError(t, db.First(&reloaded, attempt.ID).Error)
	assert.Equal(t, 2.0, reloaded.Score)
	assert.Equal(t, 100.0, reloaded.Percentage)

	var grade model.Grade
	require.NoError(t, db.Where("attempt_id = ?", attempt.ID).First(&grade).Error)
	require.NotNil(t, grade.Score)
	assert.Equal(t, 100.0, *grade.Score)
}
