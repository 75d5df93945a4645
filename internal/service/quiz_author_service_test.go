package service

import (
	"testing"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleQuizText = `Database Basics Quiz

What does SQL stand for?
A) Structured Query Language [CORRECT]
B) Simple Query Language
C) Standard Question List
D) Sequential Qualifier Logic

Which statement removes rows?
A) SELECT
B) DELETE [CORRECT]
C) ALTER
D) GRANT`

func TestCreateQuiz_FromRawText(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	course := seedCourse(t, db, teacher)

	svc := newAuthorService(db)
	quiz, err := svc.CreateQuiz(Identity{UserID: teacher.ID, Role: model.RoleTeacher}, dto.QuizCreateDTO{
		CourseID: course.ID,
		RawText:  sampleQuizText,
	})
	require.NoError(t, err)

	assert.Equal(t, "Database Basics Quiz", quiz.Title)
	assert.Equal(t, 30, quiz.TimeLimitMinutes)
	assert.Equal(t, 70.0, quiz.PassingScore)
	assert.True(t, quiz.Active)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, 1, quiz.Questions[0].OrderIndex)
	assert.Equal(t, "Structured Query Language", quiz.Questions[0].OptionA)
	assert.Equal(t, 1.0, quiz.Questions[0].Points)

	var stored []model.QuizQuestion
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Order("order_index").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.Equal(t, "A", stored[0].CorrectAnswer)
	assert.Equal(t, "B", stored[1].CorrectAnswer)
}

func TestCreateQuiz_RejectsEmptyText(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	course := seedCourse(t, db, teacher)

	svc := newAuthorService(db)
	caller := Identity{UserID: teacher.ID, Role: model.RoleTeacher}

	_, err := svc.CreateQuiz(caller, dto.QuizCreateDTO{CourseID: course.ID, RawText: "   \n \n"})
	assert.ErrorIs(t, err, ErrEmptyQuiz)

	_, err = svc.CreateQuiz(caller, dto.QuizCreateDTO{CourseID: course.ID, RawText: "Just a Title"})
	assert.ErrorIs(t, err, ErrEmptyQuiz)
}

func TestCreateQuiz_RejectsQuestionWithoutOptions(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	course := seedCourse(t, db, teacher)

	svc := newAuthorService(db)
	_, err := svc.CreateQuiz(Identity{UserID: teacher.ID, Role: model.RoleTeacher}, dto.QuizCreateDTO{
		CourseID: course.ID,
		RawText:  "Broken Quiz\n\nOptionless question?",
	})

	var unanswerable *UnanswerableQuestionError
	require.ErrorAs(t, err, &unanswerable)
	assert.Equal(t, "Optionless question?", unanswerable.QuestionText)

	var quizCount int64
	require.NoError(t, db.Model(&model.Quiz{}).Count(&quizCount).Error)
	assert.Zero(t, quizCount, "nothing may be persisted for rejected text")
}

func TestCreateQuiz_OwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner", model.RoleTeacher)
	other := seedUser(t, db, "other", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	admin := seedUser(t, db, "admin", model.RoleAdmin)
	course := seedCourse(t, db, owner)

	svc := newAuthorService(db)
	req := dto.QuizCreateDTO{CourseID: course.ID, RawText: sampleQuizText}

	_, err := svc.CreateQuiz(Identity{UserID: other.ID, Role: model.RoleTeacher}, req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateQuiz(Identity{UserID: student.ID, Role: model.RoleStudent}, req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateQuiz(Identity{UserID: admin.ID, Role: model.RoleAdmin}, req)
	assert.NoError(t, err)
}

func TestGetQuizWithAnswers_IncludesKey(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	course := seedCourse(t, db, teacher)
	quiz := seedQuiz(t, db, course, 2)

	svc := newAuthorService(db)
	_, questions, err := svc.GetQuizWithAnswers(Identity{UserID: teacher.ID, Role: model.RoleTeacher}, quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "A", questions[0].CorrectAnswer)
	assert.Equal(t, "B", questions[1].CorrectAnswer)
}

func TestDeleteQuiz_CascadesAttemptData(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 2)

	subSvc := newSubmissionService(db)
	_, err := subSvc.SubmitQuiz(Identity{UserID: student.ID, Role: model.RoleStudent}, quiz.ID,
		dto.QuizSubmitDTO{Answers: map[uint]string{quiz.Questions[0].ID: "A"}})
	require.NoError(t, err)

	svc := newAuthorService(db)
	require.NoError(t, svc.DeleteQuiz(Identity{UserID: teacher.ID, Role: model.RoleTeacher}, quiz.ID))

	for _, m := range []interface{}{&model.Quiz{}, &model.QuizQuestion{}, &model.QuizAttempt{}, &model.QuizAnswer{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestSetActive_Toggles(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	course := seedCourse(t, db, teacher)
	quiz := seedQuiz(t, db, course, 1)

	svc := newAuthorService(db)
	caller := Identity{UserID: teacher.ID, Role: model.RoleTeacher}

	require.NoError(t, svc.SetActive(caller, quiz.ID, false))

	var reloaded model.Quiz
	require.NoError(t, db.First(&reloaded, quiz.ID).Error)
	assert.False(t, reloaded.Active)
}
