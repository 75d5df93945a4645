package admin

import (
	"net/http"

	"github.com/edutrack/backend/internal/controller"
	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/middleware"
	"github.com/edutrack/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

func caller(ctx *gin.Context) (service.Identity, bool) {
	identity, ok := middleware.CallerIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
	}
	return identity, ok
}

// ListUsers godoc
// @Summary List all users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	users, err := c.adminService.ListUsers(identity)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// Analytics godoc
// @Summary Platform headline counters
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AnalyticsDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/analytics [get]
func (c *AdminController) Analytics(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	analytics, err := c.adminService.Analytics(identity)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, analytics)
}

// PendingUserRequests godoc
// @Summary List pending account deletion requests
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserDeletionRequestDTO
// @Router /admin/deletion-requests/users [get]
func (c *AdminController) PendingUserRequests(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	requests, err := c.adminService.PendingUserRequests(identity)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, requests)
}

// PendingCourseRequests godoc
// @Summary List pending course deletion requests
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CourseDeletionRequestDTO
// @Router /admin/deletion-requests/courses [get]
func (c *AdminController) PendingCourseRequests(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	requests, err := c.adminService.PendingCourseRequests(identity)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, requests)
}

// ReviewUserRequest godoc
// @Summary Approve or reject an account deletion request
// @Description Approval removes the user together with their enrollments, progress, attempts, answers, submissions and grades in one transaction.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request_id path int true "Request ID"
// @Param request body dto.DeletionRequestReviewDTO true "Decision"
// @Success 200 {object} dto.UserDeletionRequestDTO
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /admin/deletion-requests/users/{request_id} [put]
func (c *AdminController) ReviewUserRequest(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	requestID, ok := controller.ParseUintParam(ctx, "request_id")
	if !ok {
		return
	}
	var req dto.DeletionRequestReviewDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	request, err := c.adminService.ReviewUserRequest(identity, requestID, req.Approve)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Info().Uint("requestID", requestID).Bool("approved", req.Approve).Msg("account deletion request reviewed")
	ctx.JSON(http.StatusOK, request)
}

// ReviewCourseRequest godoc
// @Summary Approve or reject a course deletion request
// @Description Approval removes the course together with its materials, announcements, assignments, quizzes, attempts, answers, grades and enrollments in one transaction.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request_id path int true "Request ID"
// @Param request body dto.DeletionRequestReviewDTO true "Decision"
// @Success 200 {object} dto.CourseDeletionRequestDTO
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /admin/deletion-requests/courses/{request_id} [put]
func (c *AdminController) ReviewCourseRequest(ctx *gin.Context) {
	identity, ok := caller(ctx)
	if !ok {
		return
	}
	requestID, ok := controller.ParseUintParam(ctx, "request_id")
	if !ok {
		return
	}
	var req dto.DeletionRequestReviewDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	request, err := c.adminService.ReviewCourseRequest(identity, requestID, req.Approve)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Info().Uint("requestID", requestID).Bool("approved", req.Approve).Msg("course deletion request reviewed")
	ctx.JSON(http.StatusOK, request)
}
