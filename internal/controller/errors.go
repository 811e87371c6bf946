package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"school_reports_backend/internal/client"
	"school_reports_backend/internal/service"
	"school_reports_backend/internal/util"
	"school_reports_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// respondError maps service errors to the response envelope.
func respondError(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	var apiErr *client.APIError

	switch {
	case errors.Is(err, util.ErrNoData):
		util.Error(ctx, http.StatusNotFound, util.ErrNoData.Error())
	case errors.As(err, &verrs):
		util.BadRequest(ctx, verrs.Error())
	case errors.Is(err, util.ErrInvalidQuery), errors.Is(err, util.ErrInvalidGrade):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrStudentNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrElectiveNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrNoCupos),
		errors.Is(err, util.ErrAlreadyEnrolled),
		errors.Is(err, util.ErrNotEnrolled):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrReadOnlySource):
		util.Error(ctx, http.StatusNotImplemented, err.Error())
	case errors.Is(err, util.ErrTemplate):
		// a stored template that no longer imports; an admin has to replace it
		logger.Log.Warn("document template unusable", zap.Error(err), zap.String("path", ctx.FullPath()))
		util.Error(ctx, http.StatusServiceUnavailable, util.ErrTemplate.Error())
	case errors.As(err, &apiErr):
		logger.Log.Warn("school API error", zap.Int("status", apiErr.Status), zap.String("path", ctx.FullPath()))
		util.BadGateway(ctx, "school API error")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Log.Warn("upstream timeout", zap.String("path", ctx.FullPath()))
		util.Error(ctx, http.StatusGatewayTimeout, "school API timeout")
	default:
		util.LogInternalError(ctx, err)
	}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func sendDocument(ctx *gin.Context, doc *service.Document) {
	if doc.URL != "" {
		ctx.Header("X-Archive-URL", doc.URL)
	}
	util.Attachment(ctx, doc.Filename, doc.ContentType, doc.Data)
}
