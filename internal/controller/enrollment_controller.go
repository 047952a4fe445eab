package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// Enroll godoc
// @Summary 报名课程
// @Description 仅已发布课程可报名，重复报名返回已有记录
// @Tags 学习
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 400 {object} util.Response "课程未发布"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	enrollment, err := c.EnrollmentService.Enroll(user.UserID, courseID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Created(ctx, enrollment)
}

// ListMyEnrollments godoc
// @Summary 我的课程
// @Tags 学习
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMyEnrollments(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.EnrollmentService.ListMyEnrollments(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, enrollments)
}

// CompleteLesson godoc
// @Summary 标记课时完成
// @Description 重复标记是无操作；完成后重算课程进度
// @Tags 学习
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   lessonId path int true "课时ID"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Failure 403 {object} util.Response "未报名该课程"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/courses/{id}/lessons/{lessonId}/complete [post]
func (c *EnrollmentController) CompleteLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	enrollment, err := c.EnrollmentService.CompleteLesson(user.UserID, courseID, lessonID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, enrollment)
}
