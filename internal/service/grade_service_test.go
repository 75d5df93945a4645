package service

import (
	"testing"
	"time"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGradeService(db *gorm.DB) GradeService {
	return NewGradeService(
		repository.NewGradeRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
	)
}

func seedGrade(t *testing.T, db *gorm.DB, user model.User, course model.Course, name string, score float64) model.Grade {
	t.Helper()
	grade := model.Grade{
		UserID:         user.ID,
		CourseID:       course.ID,
		AssignmentName: name,
		Score:          &score,
		MaxScore:       100,
		GradedAt:       time.Now(),
	}
	require.NoError(t, db.Create(&grade).Error)
	return grade
}

func TestCourseGrades_Average(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	seedGrade(t, db, student, course, "Quiz: One", 80)
	seedGrade(t, db, student, course, "Quiz: Two", 60)

	svc := newGradeService(db)
	grades, err := svc.CourseGrades(Identity{UserID: student.ID, Role: model.RoleStudent}, course.ID)
	require.NoError(t, err)

	assert.Equal(t, course.Title, grades.CourseTitle)
	assert.Len(t, grades.Grades, 2)
	assert.Equal(t, 70.0, grades.Average)
}

func TestTranscript_GroupsByCourse(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	courseA := seedCourse(t, db, teacher)
	courseB := model.Course{
		Title: "Advanced Databases", Description: "d", Instructor: teacher.FullName(),
		InstructorID: teacher.ID, DurationWeeks: 8, Difficulty: "Advanced", MaxStudents: 30,
	}
	require.NoError(t, db.Create(&courseB).Error)

	seedGrade(t, db, student, courseA, "Quiz: One", 90)
	seedGrade(t, db, student, courseA, "Quiz: Two", 70)
	seedGrade(t, db, student, courseB, "Quiz: Three", 50)

	svc := newGradeService(db)
	transcript, err := svc.Transcript(Identity{UserID: student.ID, Role: model.RoleStudent})
	require.NoError(t, err)

	require.Len(t, transcript.Courses, 2)
	assert.Equal(t, 70.0, transcript.OverallGPA)

	byID := map[uint]dto.CourseGradesDTO{}
	for _, c := range transcript.Courses {
		byID[c.CourseID] = c
	}
	assert.Equal(t, 80.0, byID[courseA.ID].Average)
	assert.Equal(t, 50.0, byID[courseB.ID].Average)
}

func TestTranscript_UngradedRowsExcludedFromAverage(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedGrade(t, db, student, course, "Quiz: One", 90)
	require.NoError(t, db.Create(&model.Grade{
		UserID: student.ID, CourseID: course.ID,
		AssignmentName: "Essay", MaxScore: 100, GradedAt: time.Now(),
	}).Error)

	svc := newGradeService(db)
	transcript, err := svc.Transcript(Identity{UserID: student.ID, Role: model.RoleStudent})
	require.NoError(t, err)

	assert.Equal(t, 90.0, transcript.OverallGPA)
	require.Len(t, transcript.Courses, 1)
	assert.Len(t, transcript.Courses[0].Grades, 2)
}

func TestLetterGrade_Scale(t *testing.T) {
	cases := []struct {
		score  float64
		letter string
	}{
		{95, "A"}, {90, "A"}, {85, "B"}, {80, "B"},
		{75, "C"}, {70, "C"}, {65, "D"}, {60, "D"}, {59.9, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		score := tc.score
		grade := model.Grade{Score: &score}
		assert.Equal(t, tc.letter, grade.LetterGrade(), "score %v", tc.score)
	}

	ungraded := model.Grade{}
	assert.Equal(t, "N/A", ungraded.LetterGrade())
}

func TestRecordGrade_InstructorOnly(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	other := seedUser(t, db, "other", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)

	svc := newGradeService(db)
	req := dto.GradeCreateDTO{AssignmentName: "Project", Score: 88, Feedback: "Solid work"}

	_, err := svc.RecordGrade(Identity{UserID: other.ID, Role: model.RoleTeacher}, course.ID, student.ID, req)
	assert.ErrorIs(t, err, ErrForbidden)

	grade, err := svc.RecordGrade(Identity{UserID: teacher.ID, Role: model.RoleTeacher}, course.ID, student.ID, req)
	require.NoError(t, err)
	require.NotNil(t, grade.Score)
	assert.Equal(t, 88.0, *grade.Score)
	assert.Equal(t, "B", grade.LetterGrade)
	assert.Equal(t, "Project", grade.AssignmentName)
}

func TestRecordGrade_RequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	outsider := seedUser(t, db, "outsider", model.RoleStudent)
	course := seedCourse(t, db, teacher)

	svc := newGradeService(db)
	_, err := svc.RecordGrade(Identity{UserID: teacher.ID, Role: model.RoleTeacher}, course.ID, outsider.ID,
		dto.GradeCreateDTO{AssignmentName: "Project", Score: 50})
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestCertificate_Eligibility(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)

	svc := newGradeService(db)
	caller := Identity{UserID: student.ID, Role: model.RoleStudent}

	// No grades at all: not eligible.
	_, err := svc.Certificate(caller, course.ID)
	assert.ErrorIs(t, err, ErrNotEligible)

	seedGrade(t, db, student, course, "Quiz: One", 60)
	_, err = svc.Certificate(caller, course.ID)
	assert.ErrorIs(t, err, ErrNotEligible)

	seedGrade(t, db, student, course, "Quiz: Two", 90)
	cert, err := svc.Certificate(caller, course.ID)
	require.NoError(t, err)

	assert.Equal(t, course.ID, cert.CourseID)
	assert.Equal(t, student.ID, cert.UserID)
	assert.Equal(t, 75.0, cert.AverageScore)
	assert.Contains(t, cert.CertificateID, "CERT-")
}
