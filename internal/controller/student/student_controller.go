package student

import (
	"net/http"

	"github.com/edutrack/backend/internal/controller"
	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/middleware"
	"github.com/edutrack/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// StudentController serves the learner-facing surface: catalog, enrollment,
// materials, quizzes, grades and the dashboard.
type StudentController struct {
	courseService     service.CourseService
	enrollmentService service.EnrollmentService
	progressService   service.ProgressService
	quizService       service.QuizSubmissionService
	gradeService      service.GradeService
	assignmentService service.AssignmentService
	adminService      service.AdminService
}

func NewStudentController(
	courseService service.CourseService,
	enrollmentService service.EnrollmentService,
	progressService service.ProgressService,
	quizService service.QuizSubmissionService,
	gradeService service.GradeService,
	assignmentService service.AssignmentService,
	adminService service.AdminService,
) *StudentController {
	return &StudentController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
		progressService:   progressService,
		quizService:       quizService,
		gradeService:      gradeService,
		assignmentService: assignmentService,
		adminService:      adminService,
	}
}

func caller(ctx *gin.Context) (service.Identity, bool) {
	identity, ok := middleware.CallerIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
	}
	return identity, ok
}

// ListCourses godoc
// @Summary Browse the course catalog
// @Description Lists courses, optionally filtered by a title/description search term and difficulty.
// @Tags Student - Courses
// @Produce json
// @Param search query string false "Search term"
// @Param difficulty query string false "Difficulty filter" Enums(Beginner, Intermediate, Advanced)
// @Success 200 {array} dto.CourseResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses [get]
func (c *StudentController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Query("search"), ctx.Query("difficulty"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// GetCourse godoc
// @Summary Get one course with the caller's enrollment state
// @Tags Student - Courses
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id} [get]
func (c *StudentController) GetCourse(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(identity, courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags Student - Courses
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 201 {object} dto.EnrollmentResponseDTO
// @Failure 409 {object} dto.ErrorResponse "Already enrolled or course full"
// @Router /courses/{course_id}/enroll [post]
func (c *StudentController) Enroll(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.Enroll(identity, courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, enrollment)
}

// MyEnrollments godoc
// @Summary List the caller's enrollments
// @Tags Student - Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EnrollmentResponseDTO
// @Router /my/enrollments [get]
func (c *StudentController) MyEnrollments(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	enrollments, err := c.enrollmentService.MyEnrollments(identity)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, enrollments)
}

// ListMaterials godoc
// @Summary List a course's materials with per-material completion
// @Tags Student - Materials
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {array} dto.MaterialResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Not enrolled"
// @Router /courses/{course_id}/materials [get]
func (c *StudentController) ListMaterials(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	materials, err := c.progressService.ListMaterials(identity, courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, materials)
}

// MarkMaterialComplete godoc
// @Summary Mark a material as studied
// @Description Idempotent; returns the refreshed course progress summary.
// @Tags Student - Materials
// @Produce json
// @Security BearerAuth
// @Param material_id path int true "Material ID"
// @Success 200 {object} dto.CourseProgressDTO
// @Failure 403 {object} dto.ErrorResponse "Not enrolled"
// @Router /materials/{material_id}/complete [post]
func (c *StudentController) MarkMaterialComplete(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	materialID, ok := controller.ParseUintParam(ctx, "material_id")
	if !ok {
		return
	}

	progress, err := c.progressService.MarkMaterialComplete(identity, materialID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, progress)
}

// CourseProgress godoc
// @Summary Get the caller's progress in a course
// @Tags Student - Materials
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseProgressDTO
// @Router /courses/{course_id}/progress [get]
func (c *StudentController) CourseProgress(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	progress, err := c.progressService.CourseProgress(identity, courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, progress)
}

// ListQuizzes godoc
// @Summary List a course's quizzes with attempt status
// @Tags Student - Quizzes
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 403 {object} dto.ErrorResponse "Not enrolled"
// @Router /courses/{course_id}/quizzes [get]
func (c *StudentController) ListQuizzes(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	quizzes, err := c.quizService.ListQuizzes(identity, courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary Get a quiz for taking
// @Description Questions are returned in authored order without the answer key.
// @Tags Student - Quizzes
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Quiz inactive"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled"
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id} [get]
func (c *StudentController) GetQuiz(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseUintParam(ctx, "quiz_id")
	if !ok {
		return
	}

	quiz, err := c.quizService.GetQuizForTaking(identity, quizID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Scores the attempt, records a grade ledger entry and returns the graded attempt. One attempt per quiz per student.
// @Tags Student - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Param request body dto.QuizSubmitDTO true "Answers keyed by question ID"
// @Success 201 {object} dto.QuizAttemptResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Not enrolled"
// @Failure 409 {object} dto.ErrorResponse "Already attempted"
// @Router /quizzes/{quiz_id}/submit [post]
func (c *StudentController) SubmitQuiz(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseUintParam(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.QuizSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	attempt, err := c.quizService.SubmitQuiz(identity, quizID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, attempt)
}

// GetAttempt godoc
// @Summary Get a graded attempt with per-question results
// @Tags Student - Quizzes
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.QuizAttemptResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id} [get]
func (c *StudentController) GetAttempt(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	attemptID, ok := controller.ParseUintParam(ctx, "attempt_id")
	if !ok {
		return
	}

	attempt, err := c.quizService.GetAttempt(identity, attemptID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// ListAssignments godoc
// @Summary List a course's assignments with submission status
// @Tags Student - Assignments
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {array} dto.AssignmentResponseDTO
// @Router /courses/{course_id}/assignments [get]
func (c *StudentController) ListAssignments(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	assignments, err := c.assignmentService.ListAssignments(identity, courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, assignments)
}

// SubmitAssignment godoc
// @Summary Submit an assignment
// @Tags Student - Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment_id path int true "Assignment ID"
// @Param request body dto.SubmissionCreateDTO true "Submission content"
// @Success 201 {object} dto.SubmissionResponseDTO
// @Failure 409 {object} dto.ErrorResponse "Already submitted"
// @Router /assignments/{assignment_id}/submit [post]
func (c *StudentController) SubmitAssignment(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	assignmentID, ok := controller.ParseUintParam(ctx, "assignment_id")
	if !ok {
		return
	}
	var req dto.SubmissionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	submission, err := c.assignmentService.SubmitAssignment(identity, assignmentID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, submission)
}

// ListAnnouncements godoc
// @Summary List a course's announcements
// @Tags Student - Courses
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {array} dto.AnnouncementResponseDTO
// @Router /courses/{course_id}/announcements [get]
func (c *StudentController) ListAnnouncements(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	announcements, err := c.courseService.ListAnnouncements(identity, courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, announcements)
}

// CourseGrades godoc
// @Summary Get the caller's grades in one course
// @Tags Student - Grades
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseGradesDTO
// @Router /courses/{course_id}/grades [get]
func (c *StudentController) CourseGrades(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	grades, err := c.gradeService.CourseGrades(identity, courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, grades)
}

// Transcript godoc
// @Summary Get the caller's full transcript with overall GPA
// @Tags Student - Grades
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TranscriptDTO
// @Router /my/transcript [get]
func (c *StudentController) Transcript(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	transcript, err := c.gradeService.Transcript(identity)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, transcript)
}

// Certificate godoc
// @Summary Request a course completion certificate
// @Description Requires a course average of at least 70.
// @Tags Student - Grades
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CertificateDTO
// @Failure 400 {object} dto.ErrorResponse "Not eligible"
// @Router /courses/{course_id}/certificate [get]
func (c *StudentController) Certificate(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}

	certificate, err := c.gradeService.Certificate(identity, courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, certificate)
}

// Dashboard godoc
// @Summary Student dashboard
// @Tags Student - Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StudentDashboardDTO
// @Router /my/dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	dashboard, err := c.courseService.StudentDashboard(identity)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dashboard)
}

// RequestAccountDeletion godoc
// @Summary Request deletion of the caller's account
// @Tags Student - Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeletionRequestCreateDTO true "Reason"
// @Success 201 {object} dto.UserDeletionRequestDTO
// @Router /my/deletion-request [post]
func (c *StudentController) RequestAccountDeletion(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	var req dto.DeletionRequestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	request, err := c.adminService.RequestAccountDeletion(identity, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, request)
}
