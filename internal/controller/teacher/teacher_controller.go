package teacher

import (
	"net/http"

	"github.com/edutrack/backend/internal/controller"
	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/middleware"
	"github.com/edutrack/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// TeacherController serves the authoring surface: courses, materials,
// announcements, assignments, quizzes and manual grading.
type TeacherController struct {
	courseService     service.CourseService
	quizService       service.QuizAuthorService
	gradeService      service.GradeService
	assignmentService service.AssignmentService
	enrollmentService service.EnrollmentService
	adminService      service.AdminService
}

func NewTeacherController(
	courseService service.CourseService,
	quizService service.QuizAuthorService,
	gradeService service.GradeService,
	assignmentService service.AssignmentService,
	enrollmentService service.EnrollmentService,
	adminService service.AdminService,
) *TeacherController {
	return &TeacherController{
		courseService:     courseService,
		quizService:       quizService,
		gradeService:      gradeService,
		assignmentService: assignmentService,
		enrollmentService: enrollmentService,
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

// CreateCourse godoc
// @Summary Create a course
// @Tags Teacher - Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseCreateDTO true "Course payload"
// @Success 201 {object} dto.CourseResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /teacher/courses [post]
func (c *TeacherController) CreateCourse(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	var req dto.CourseCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	course, err := c.courseService.CreateCourse(identity, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// Dashboard godoc
// @Summary Teacher dashboard
// @Description Courses taught, total enrolled students and recent grade activity.
// @Tags Teacher - Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TeacherDashboardDTO
// @Router /teacher/dashboard [get]
func (c *TeacherController) Dashboard(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	dashboard, err := c.courseService.TeacherDashboard(identity)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dashboard)
}

// CourseRoster godoc
// @Summary List students enrolled in a course
// @Tags Teacher - Courses
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {array} dto.RosterEntryDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /teacher/courses/{course_id}/students [get]
func (c *TeacherController) CourseRoster(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}
	roster, err := c.enrollmentService.CourseRoster(identity, courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, roster)
}

// AddMaterial godoc
// @Summary Add a material to a course
// @Tags Teacher - Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param request body dto.MaterialCreateDTO true "Material payload"
// @Success 201 {object} dto.MaterialResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /teacher/courses/{course_id}/materials [post]
func (c *TeacherController) AddMaterial(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}
	var req dto.MaterialCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	material, err := c.courseService.AddMaterial(identity, courseID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, material)
}

// CreateAnnouncement godoc
// @Summary Post a course announcement
// @Tags Teacher - Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param request body dto.AnnouncementCreateDTO true "Announcement payload"
// @Success 201 {object} dto.AnnouncementResponseDTO
// @Router /teacher/courses/{course_id}/announcements [post]
func (c *TeacherController) CreateAnnouncement(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}
	var req dto.AnnouncementCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	announcement, err := c.courseService.CreateAnnouncement(identity, courseID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, announcement)
}

// CreateQuiz godoc
// @Summary Create a quiz from raw authoring text
// @Description Parses the quiz text into questions and persists quiz and questions atomically. Rejects text with no questions or a question whose answers cannot be resolved.
// @Tags Teacher - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.QuizCreateDTO true "Quiz payload with raw text"
// @Success 201 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Unparseable quiz text"
// @Failure 403 {object} dto.ErrorResponse
// @Router /teacher/quizzes [post]
func (c *TeacherController) CreateQuiz(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	quiz, err := c.quizService.CreateQuiz(identity, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Info().Uint("quizID", quiz.ID).Uint("courseID", quiz.CourseID).Msg("quiz created")
	ctx.JSON(http.StatusCreated, quiz)
}

// GetQuizWithAnswers godoc
// @Summary Get a quiz including the answer key
// @Tags Teacher - Quizzes
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /teacher/quizzes/{quiz_id} [get]
func (c *TeacherController) GetQuizWithAnswers(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseUintParam(ctx, "quiz_id")
	if !ok {
		return
	}

	quiz, questions, err := c.quizService.GetQuizWithAnswers(identity, quizID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"quiz": quiz, "questions": questions})
}

// UpdateQuestion godoc
// @Summary Edit a question's answer key or points
// @Description Updating the correct answer or points re-scores every existing attempt of the quiz and syncs their grade entries, all in one transaction.
// @Tags Teacher - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Param request body dto.QuestionUpdateDTO true "Fields to change"
// @Success 200 {object} dto.QuizQuestionAuthorDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /teacher/questions/{question_id} [put]
func (c *TeacherController) UpdateQuestion(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	questionID, ok := controller.ParseUintParam(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.QuestionUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	question, err := c.quizService.UpdateQuestion(identity, questionID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// SetQuizActive godoc
// @Summary Activate or deactivate a quiz
// @Tags Teacher - Quizzes
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Param active query bool true "Desired state"
// @Success 200 {object} dto.MessageResponse
// @Router /teacher/quizzes/{quiz_id}/active [put]
func (c *TeacherController) SetQuizActive(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseUintParam(ctx, "quiz_id")
	if !ok {
		return
	}
	active := ctx.Query("active") == "true"

	if err := c.quizService.SetActive(identity, quizID, active); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Quiz updated"})
}

// DeleteQuiz godoc
// @Summary Delete a quiz with its questions, attempts and answers
// @Tags Teacher - Quizzes
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /teacher/quizzes/{quiz_id} [delete]
func (c *TeacherController) DeleteQuiz(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseUintParam(ctx, "quiz_id")
	if !ok {
		return
	}

	if err := c.quizService.DeleteQuiz(identity, quizID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Quiz deleted"})
}

// CreateAssignment godoc
// @Summary Create an assignment
// @Tags Teacher - Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param request body dto.AssignmentCreateDTO true "Assignment payload"
// @Success 201 {object} dto.AssignmentResponseDTO
// @Router /teacher/courses/{course_id}/assignments [post]
func (c *TeacherController) CreateAssignment(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}
	var req dto.AssignmentCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	assignment, err := c.assignmentService.CreateAssignment(identity, courseID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, assignment)
}

// ListSubmissions godoc
// @Summary List submissions for an assignment
// @Tags Teacher - Assignments
// @Produce json
// @Security BearerAuth
// @Param assignment_id path int true "Assignment ID"
// @Success 200 {array} dto.SubmissionResponseDTO
// @Router /teacher/assignments/{assignment_id}/submissions [get]
func (c *TeacherController) ListSubmissions(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	assignmentID, ok := controller.ParseUintParam(ctx, "assignment_id")
	if !ok {
		return
	}

	submissions, err := c.assignmentService.ListSubmissions(identity, assignmentID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, submissions)
}

// RecordGrade godoc
// @Summary Record a manual grade for an enrolled student
// @Tags Teacher - Grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param student_id path int true "Student ID"
// @Param request body dto.GradeCreateDTO true "Grade payload"
// @Success 201 {object} dto.GradeResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /teacher/courses/{course_id}/students/{student_id}/grades [post]
func (c *TeacherController) RecordGrade(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}
	studentID, ok := controller.ParseUintParam(ctx, "student_id")
	if !ok {
		return
	}
	var req dto.GradeCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	grade, err := c.gradeService.RecordGrade(identity, courseID, studentID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, grade)
}

// RequestCourseDeletion godoc
// @Summary Request deletion of an owned course
// @Tags Teacher - Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param request body dto.DeletionRequestCreateDTO true "Reason"
// @Success 201 {object} dto.CourseDeletionRequestDTO
// @Router /teacher/courses/{course_id}/deletion-request [post]
func (c *TeacherController) RequestCourseDeletion(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	courseID, ok := controller.ParseUintParam(ctx, "course_id")
	if !ok {
		return
	}
	var req dto.DeletionRequestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	request, err := c.adminService.RequestCourseDeletion(identity, courseID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, request)
}
