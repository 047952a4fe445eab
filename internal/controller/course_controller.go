package controller

import (
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 讲师创建新课程，初始状态为草稿
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CourseInput true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/instructor/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(user.UserID, input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// ListMyCourses godoc
// @Summary 讲师课程列表
// @Tags 课程管理
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/instructor/courses [get]
func (c *CourseController) ListMyCourses(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.ListMyCourses(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情（讲师视图）
// @Description 返回课程聚合详情：元数据、章节课时与派生指标。课程不存在或属于他人时一律返回404
// @Tags 课程管理
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/instructor/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	detail, err := c.CourseService.GetOwnedCourseDetail(ctx.Request.Context(), courseID, user.UserID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Description 标题、描述、分类、难度或价格任一变化会触发重新审核
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body service.CourseInput true "课程信息"
// @Success 200 {object} util.Response{data=service.UpdateResult}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/instructor/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	result, err := c.CourseService.UpdateCourse(ctx.Request.Context(), courseID, user.UserID, input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// CurriculumRequest 课程大纲整体替换请求
// swagger:model CurriculumRequest
type CurriculumRequest struct {
	Modules []service.ModuleInput `json:"modules" binding:"required"`
}

// ReplaceCurriculum godoc
// @Summary 整体替换课程大纲
// @Description 在单个事务内替换全部章节与课时，序号重排为稠密的1..N
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body CurriculumRequest true "章节与课时"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/instructor/courses/{id}/curriculum [put]
func (c *CourseController) ReplaceCurriculum(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CurriculumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	if err := c.CourseService.ReplaceCurriculum(ctx.Request.Context(), courseID, user.UserID, req.Modules); err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// SubmitForReview godoc
// @Summary 提交课程审核
// @Description 草稿或待修改状态的课程可提交，进入审核队列
// @Tags 课程管理
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/instructor/courses/{id}/submit [post]
func (c *CourseController) SubmitForReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	if err := c.CourseService.SubmitForReview(courseID, user.UserID); err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Tags 课程管理
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/instructor/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	if err := c.CourseService.DeleteCourse(courseID, user.UserID); err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// ListMarketplace godoc
// @Summary 课程市场
// @Description 分页浏览已发布课程，支持分类、难度和关键字筛选
// @Tags 课程市场
// @Produce  json
// @Param   category query string false "分类"
// @Param   level query string false "难度"
// @Param   search query string false "关键字"
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(12)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) ListMarketplace(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))

	filter := repository.CourseFilter{
		Category: ctx.Query("category"),
		Level:    ctx.Query("level"),
		Search:   ctx.Query("search"),
		Page:     page,
		Limit:    limit,
	}

	courses, total, err := c.CourseService.ListMarketplace(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetPublicCourse godoc
// @Summary 课程详情（公开视图）
// @Description 仅已发布课程可见，未发布课时被过滤
// @Tags 课程市场
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetPublicCourse(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	detail, err := c.CourseService.GetPublicCourse(ctx.Request.Context(), courseID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}
