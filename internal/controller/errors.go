package controller

import (
	"errors"
	"learnhub_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleError 统一把服务层错误翻译成HTTP响应。
// 资源不存在与无权访问都返回404，避免泄露资源存在性。
func handleError(ctx *gin.Context, err error) {
	switch {
	case util.IsValidationError(err):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrEnrollmentNotFound),
		errors.Is(err, util.ErrEventNotFound),
		errors.Is(err, util.ErrSessionNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrPermissionDenied), errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrCourseNotPublished), errors.Is(err, util.ErrAlreadyReviewed):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
