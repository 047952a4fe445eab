package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetInstructorDashboard godoc
// @Summary 讲师工作台
// @Description 聚合课程数、学生总数、平均评分、各课程统计与最近报名。单项查询失败不影响其余部分
// @Tags 工作台
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.InstructorDashboard}
// @Router /api/instructor/dashboard [get]
func (c *DashboardController) GetInstructorDashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.GetInstructorDashboard(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}
