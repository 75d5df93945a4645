package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ParseUintParam reads a numeric path parameter, answering 400 itself on a
// malformed value.
func ParseUintParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Invalid %s format", name)})
		return 0, false
	}
	return uint(val), true
}

// RespondError maps service errors onto HTTP statuses. Anything not covered
// by a known sentinel is a 500.
func RespondError(ctx *gin.Context, err error) {
	var unanswerable *service.UnanswerableQuestionError
	var duplicate *service.DuplicateAttemptError

	switch {
	case errors.Is(err, service.ErrBadCredentials):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNotEnrolled):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrCourseFull),
		errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrAlreadySubmitted),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrRequestAlreadyReviewed):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &duplicate):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Message: "Quiz already attempted",
			Details: []string{fmt.Sprintf("existing attempt ID: %d", duplicate.ExistingAttemptID)},
		})
	case errors.Is(err, service.ErrQuizInactive),
		errors.Is(err, service.ErrEmptyQuiz),
		errors.Is(err, service.ErrNotEligible):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &unanswerable):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}
