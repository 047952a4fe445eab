package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CurriculumController struct {
	CurriculumService *service.CurriculumService
}

func NewCurriculumController(curriculumService *service.CurriculumService) *CurriculumController {
	return &CurriculumController{CurriculumService: curriculumService}
}

// ModuleRequest 章节创建/更新请求
// swagger:model ModuleRequest
type ModuleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CreateModule godoc
// @Summary 创建章节
// @Description 新章节排在课程最后
// @Tags 大纲管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body ModuleRequest true "章节信息"
// @Success 201 {object} util.Response{data=model.CourseModule}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/instructor/courses/{id}/modules [post]
func (c *CurriculumController) CreateModule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	mod, err := c.CurriculumService.CreateModule(courseID, user.UserID, req.Title, req.Description)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Created(ctx, mod)
}

// UpdateModule godoc
// @Summary 更新章节
// @Tags 大纲管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   moduleId path int true "章节ID"
// @Param   body body ModuleRequest true "章节信息"
// @Success 200 {object} util.Response{data=model.CourseModule}
// @Failure 404 {object} util.Response "章节不存在"
// @Router /api/instructor/modules/{moduleId} [put]
func (c *CurriculumController) UpdateModule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	moduleID := util.MustParseUint(ctx.Param("moduleId"))
	mod, err := c.CurriculumService.UpdateModule(moduleID, user.UserID, req.Title, req.Description)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, mod)
}

// DeleteModule godoc
// @Summary 删除章节
// @Description 同时删除章节下全部课时，剩余章节序号重排
// @Tags 大纲管理
// @Produce  json
// @Security BearerAuth
// @Param   moduleId path int true "章节ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "章节不存在"
// @Router /api/instructor/modules/{moduleId} [delete]
func (c *CurriculumController) DeleteModule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID := util.MustParseUint(ctx.Param("moduleId"))
	if err := c.CurriculumService.DeleteModule(moduleID, user.UserID); err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// CreateLesson godoc
// @Summary 创建课时
// @Description 未指定章节时归入课程第一个章节（必要时自动创建）；未指定序号时排在末尾
// @Tags 大纲管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body service.LessonCreate true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response "标题为空"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/instructor/courses/{id}/lessons [post]
func (c *CurriculumController) CreateLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.LessonCreate
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	lesson, err := c.CurriculumService.CreateLesson(courseID, user.UserID, input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Created(ctx, lesson)
}

// ListLessons godoc
// @Summary 课程课时列表
// @Description 按章节序号与课时序号排序返回
// @Tags 大纲管理
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/instructor/courses/{id}/lessons [get]
func (c *CurriculumController) ListLessons(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	lessons, err := c.CurriculumService.ListLessons(courseID, user.UserID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, lessons)
}

// ReorderRequest 课时顺序批量更新请求
// swagger:model ReorderRequest
type ReorderRequest struct {
	Order []service.LessonPosition `json:"order" binding:"required"`
}

// ReorderLessons godoc
// @Summary 批量更新课时顺序
// @Description 一次请求整体应用新顺序：列表非空、ID不重复、序号为稠密的1..N，单个事务内生效
// @Tags 大纲管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body ReorderRequest true "课时顺序"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "顺序列表不合法"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/instructor/courses/{id}/lessons/reorder [put]
func (c *CurriculumController) ReorderLessons(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	if err := c.CurriculumService.ReorderLessons(courseID, user.UserID, req.Order); err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// LessonUpdateRequest 课时更新请求
// swagger:model LessonUpdateRequest
type LessonUpdateRequest struct {
	service.LessonCreate
	IsPublished *bool `json:"isPublished"`
}

// UpdateLesson godoc
// @Summary 更新课时
// @Tags 大纲管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path int true "课时ID"
// @Param   body body LessonUpdateRequest true "课时信息"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/instructor/lessons/{lessonId} [put]
func (c *CurriculumController) UpdateLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req LessonUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	lesson, err := c.CurriculumService.UpdateLesson(lessonID, user.UserID, req.LessonCreate, req.IsPublished)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary 删除课时
// @Description 同章节剩余课时序号重排为稠密的1..N
// @Tags 大纲管理
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path int true "课时ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/instructor/lessons/{lessonId} [delete]
func (c *CurriculumController) DeleteLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if err := c.CurriculumService.DeleteLesson(lessonID, user.UserID); err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
