package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{AdminService: adminService}
}

// GetDashboard godoc
// @Summary 管理员仪表盘
// @Description 聚合平台指标、待审核队列、系统健康与最近活动，各部分独立容错
// @Tags 管理后台
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AdminDashboard}
// @Router /api/admin/dashboard [get]
func (c *AdminController) GetDashboard(ctx *gin.Context) {
	dashboard, err := c.AdminService.GetDashboard(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}

// ApproveCourse godoc
// @Summary 审核通过课程
// @Description 待审核课程发布上线，清除历史驳回原因
// @Tags 管理后台
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id}/approve [post]
func (c *AdminController) ApproveCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	if err := c.AdminService.ApproveCourse(courseID, user.UserID); err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// RejectRequest 驳回课程请求
// swagger:model RejectRequest
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectCourse godoc
// @Summary 驳回课程
// @Description 课程转入待修改状态并附驳回原因
// @Tags 管理后台
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body RejectRequest true "驳回原因"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id}/reject [post]
func (c *AdminController) RejectCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	if err := c.AdminService.RejectCourse(courseID, user.UserID, req.Reason); err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
