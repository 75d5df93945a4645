package service

import (
	"fmt"
	"testing"

	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema. The
// shared cache keeps all pooled connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Enrollment{},
		&model.CourseMaterial{},
		&model.StudyProgress{},
		&model.Announcement{},
		&model.Assignment{},
		&model.AssignmentSubmission{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.QuizAnswer{},
		&model.Grade{},
		&model.UserDeletionRequest{},
		&model.CourseDeletionRequest{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) model.User {
	t.Helper()
	user := model.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, instructor model.User) model.Course {
	t.Helper()
	course := model.Course{
		Title:         "Intro to Databases",
		Description:   "Relational fundamentals",
		Instructor:    instructor.FullName(),
		InstructorID:  instructor.ID,
		DurationWeeks: 8,
		Difficulty:    "Beginner",
		MaxStudents:   30,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedEnrollment(t *testing.T, db *gorm.DB, user model.User, course model.Course) model.Enrollment {
	t.Helper()
	enrollment := model.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   model.EnrollmentActive,
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

// seedQuiz creates an active quiz with n one-point questions whose correct
// answers cycle A, B, C, D in order.
func seedQuiz(t *testing.T, db *gorm.DB, course model.Course, n int) model.Quiz {
	t.Helper()
	quiz := model.Quiz{
		CourseID:         course.ID,
		Title:            "Chapter Quiz",
		TimeLimitMinutes: 30,
		PassingScore:     70,
		Active:           true,
	}
	letters := []string{"A", "B", "C", "D"}
	for i := 0; i < n; i++ {
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			QuestionText:  fmt.Sprintf("Question %d?", i+1),
			OptionA:       "first",
			OptionB:       "second",
			OptionC:       "third",
			OptionD:       "fourth",
			CorrectAnswer: letters[i%len(letters)],
			Points:        1,
			OrderIndex:    i + 1,
		})
	}
	require.NoError(t, db.Create(&quiz).Error)
	return quiz
}

func newSubmissionService(db *gorm.DB) QuizSubmissionService {
	return NewQuizSubmissionService(
		repository.NewQuizRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewEnrollmentRepository(db),
		db,
	)
}

func newAuthorService(db *gorm.DB) QuizAuthorService {
	return NewQuizAuthorService(
		repository.NewQuizRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewCourseRepository(db),
		NewRegradeService(db),
		db,
	)
}
