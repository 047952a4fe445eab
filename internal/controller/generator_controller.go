package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GeneratorController struct {
	GeneratorService *service.GeneratorService
}

func NewGeneratorController(generatorService *service.GeneratorService) *GeneratorController {
	return &GeneratorController{GeneratorService: generatorService}
}

// GenerateOutline godoc
// @Summary AI生成课程大纲
// @Description 根据素材生成结构化大纲，讲师确认后再导入为课程
// @Tags AI助手
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GenerateRequest true "素材与指令"
// @Success 200 {object} util.Response{data=service.CourseOutline}
// @Failure 400 {object} util.Response "素材为空"
// @Router /api/instructor/generator/outline [post]
func (c *GeneratorController) GenerateOutline(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outline, err := c.GeneratorService.GenerateOutline(ctx.Request.Context(), req)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, outline)
}

// ImportOutline godoc
// @Summary 导入大纲为草稿课程
// @Description 章节与课时在单个事务内创建，序号为稠密的1..N
// @Tags AI助手
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CourseOutline true "课程大纲"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response "大纲不完整"
// @Router /api/instructor/generator/import [post]
func (c *GeneratorController) ImportOutline(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var outline service.CourseOutline
	if err := ctx.ShouldBindJSON(&outline); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.GeneratorService.ImportOutline(ctx.Request.Context(), user.UserID, &outline)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Created(ctx, course)
}
