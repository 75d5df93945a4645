package service

import (
	"testing"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminServiceForTest(db *gorm.DB) AdminService {
	return NewAdminService(
		db,
		repository.NewUserRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewQuizRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewDeletionRequestRepository(db),
	)
}

func TestAnalytics_Counts(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", model.RoleAdmin)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	seedQuiz(t, db, course, 2)

	svc := newAdminServiceForTest(db)
	analytics, err := svc.Analytics(Identity{UserID: admin.ID, Role: model.RoleAdmin})
	require.NoError(t, err)

	assert.EqualValues(t, 3, analytics.TotalUsers)
	assert.EqualValues(t, 1, analytics.TotalCourses)
	assert.EqualValues(t, 1, analytics.TotalEnrollments)
	assert.EqualValues(t, 1, analytics.TotalQuizzes)
	assert.EqualValues(t, 0, analytics.TotalAttempts)
	assert.EqualValues(t, 0, analytics.PendingRequests)

	// Non-admins are rejected.
	_, err = svc.Analytics(Identity{UserID: student.ID, Role: model.RoleStudent})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReviewUserRequest_ApproveCascades(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", model.RoleAdmin)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 2)

	subSvc := newSubmissionService(db)
	_, err := subSvc.SubmitQuiz(Identity{UserID: student.ID, Role: model.RoleStudent}, quiz.ID,
		dto.QuizSubmitDTO{Answers: map[uint]string{quiz.Questions[0].ID: "A"}})
	require.NoError(t, err)

	svc := newAdminServiceForTest(db)
	request, err := svc.RequestAccountDeletion(Identity{UserID: student.ID, Role: model.RoleStudent},
		dto.DeletionRequestCreateDTO{Reason: "leaving the platform"})
	require.NoError(t, err)
	assert.Equal(t, model.RequestPending, request.Status)

	reviewed, err := svc.ReviewUserRequest(Identity{UserID: admin.ID, Role: model.RoleAdmin}, request.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.RequestApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, admin.ID, *reviewed.ReviewedBy)

	// All of the student's data is gone.
	for _, m := range []interface{}{&model.Enrollment{}, &model.QuizAttempt{}, &model.Grade{}} {
		var count int64
		require.NoError(t, db.Model(m).Where("user_id = ?", student.ID).Count(&count).Error)
		assert.Zero(t, count)
	}
	var userCount int64
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", student.ID).Count(&userCount).Error)
	assert.Zero(t, userCount)

	// A second review is rejected.
	_, err = svc.ReviewUserRequest(Identity{UserID: admin.ID, Role: model.RoleAdmin}, request.ID, true)
	assert.ErrorIs(t, err, ErrRequestAlreadyReviewed)
}

func TestReviewUserRequest_RejectKeepsData(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", model.RoleAdmin)
	student := seedUser(t, db, "student", model.RoleStudent)

	svc := newAdminServiceForTest(db)
	request, err := svc.RequestAccountDeletion(Identity{UserID: student.ID, Role: model.RoleStudent},
		dto.DeletionRequestCreateDTO{Reason: "changed my mind already"})
	require.NoError(t, err)

	reviewed, err := svc.ReviewUserRequest(Identity{UserID: admin.ID, Role: model.RoleAdmin}, request.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.RequestRejected, reviewed.Status)

	var userCount int64
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", student.ID).Count(&userCount).Error)
	assert.EqualValues(t, 1, userCount)
}

func TestReviewCourseRequest_ApproveCascades(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", model.RoleAdmin)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	student := seedUser(t, db, "student", model.RoleStudent)
	course := seedCourse(t, db, teacher)
	seedEnrollment(t, db, student, course)
	quiz := seedQuiz(t, db, course, 1)

	subSvc := newSubmissionService(db)
	_, err := subSvc.SubmitQuiz(Identity{UserID: student.ID, Role: model.RoleStudent}, quiz.ID,
		dto.QuizSubmitDTO{Answers: map[uint]string{quiz.Questions[0].ID: "A"}})
	require.NoError(t, err)

	svc := newAdminServiceForTest(db)
	request, err := svc.RequestCourseDeletion(Identity{UserID: teacher.ID, Role: model.RoleTeacher}, course.ID,
		dto.DeletionRequestCreateDTO{Reason: "course retired"})
	require.NoError(t, err)

	_, err = svc.ReviewCourseRequest(Identity{UserID: admin.ID, Role: model.RoleAdmin}, request.ID, true)
	require.NoError(t, err)

	for _, m := range []interface{}{
		&model.Course{}, &model.Enrollment{}, &model.Quiz{}, &model.QuizQuestion{},
		&model.QuizAttempt{}, &model.QuizAnswer{}, &model.Grade{},
	} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestRequestCourseDeletion_OwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "teacher", model.RoleTeacher)
	other := seedUser(t, db, "other", model.RoleTeacher)
	course := seedCourse(t, db, teacher)

	svc := newAdminServiceForTest(db)
	_, err := svc.RequestCourseDeletion(Identity{UserID: other.ID, Role: model.RoleTeacher}, course.ID,
		dto.DeletionRequestCreateDTO{Reason: "not mine"})
	assert.ErrorIs(t, err, ErrForbidden)
}
