package controller

import (
	"errors"
	"learnhub_backend/internal/builder"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BuilderController struct {
	BuilderService *service.BuilderService
}

func NewBuilderController(builderService *service.BuilderService) *BuilderController {
	return &BuilderController{BuilderService: builderService}
}

// handleBuilderError 向导自身的校验错误都是客户端错误，映射为400
func handleBuilderError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, builder.ErrTitleRequired),
		errors.Is(err, builder.ErrDescriptionRequired),
		errors.Is(err, builder.ErrCategoryRequired),
		errors.Is(err, builder.ErrLessonTitleRequired),
		errors.Is(err, builder.ErrNoLessons),
		errors.Is(err, builder.ErrIndexOutOfRange),
		errors.Is(err, builder.ErrWrongState):
		util.BadRequest(ctx, err.Error())
	default:
		handleError(ctx, err)
	}
}

// StartSession godoc
// @Summary 开始课程创建向导
// @Description 创建一个新的向导会话，从课程基础信息一步开始
// @Tags 课程向导
// @Produce  json
// @Security BearerAuth
// @Success 201 {object} util.Response{data=service.SessionView}
// @Router /api/instructor/builder/sessions [post]
func (c *BuilderController) StartSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Created(ctx, c.BuilderService.StartSession(user.UserID))
}

// GetSession godoc
// @Summary 查看向导会话
// @Tags 课程向导
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 404 {object} util.Response "会话不存在或已过期"
// @Router /api/instructor/builder/sessions/{sessionId} [get]
func (c *BuilderController) GetSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.BuilderService.GetSession(ctx.Param("sessionId"), user.UserID)
	if err != nil {
		handleBuilderError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// SetFoundation godoc
// @Summary 填写课程基础信息
// @Description 只更新会话内的草稿，不触达数据库
// @Tags 课程向导
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path string true "会话ID"
// @Param   body body builder.Foundation true "基础信息"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 404 {object} util.Response "会话不存在或已过期"
// @Router /api/instructor/builder/sessions/{sessionId}/foundation [put]
func (c *BuilderController) SetFoundation(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var f builder.Foundation
	if err := ctx.ShouldBindJSON(&f); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.BuilderService.SetFoundation(ctx.Param("sessionId"), user.UserID, f)
	if err != nil {
		handleBuilderError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// SubmitFoundation godoc
// @Summary 提交基础信息并进入大纲整理
// @Description 本地校验通过后才创建课程；课程已创建时重复提交是无操作
// @Tags 课程向导
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response "基础信息不完整"
// @Failure 404 {object} util.Response "会话不存在或已过期"
// @Router /api/instructor/builder/sessions/{sessionId}/submit [post]
func (c *BuilderController) SubmitFoundation(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.BuilderService.SubmitFoundation(ctx.Request.Context(), ctx.Param("sessionId"), user.UserID)
	if err != nil {
		handleBuilderError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// BuilderLessonRequest 向导内新增课时请求
// swagger:model BuilderLessonRequest
type BuilderLessonRequest struct {
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl"`
}

// AddLesson godoc
// @Summary 向导内新增课时
// @Description 空标题在本地被拒绝，不发起网络请求；新课时排在末尾
// @Tags 课程向导
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path string true "会话ID"
// @Param   body body BuilderLessonRequest true "课时信息"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response "标题为空"
// @Router /api/instructor/builder/sessions/{sessionId}/lessons [post]
func (c *BuilderController) AddLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req BuilderLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.BuilderService.AddLesson(ctx.Request.Context(), ctx.Param("sessionId"), user.UserID, req.Title, req.VideoURL)
	if err != nil {
		handleBuilderError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// MoveLessonRequest 拖拽排序请求，下标从0开始
// swagger:model MoveLessonRequest
type MoveLessonRequest struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// MoveLesson godoc
// @Summary 向导内拖拽调整课时顺序
// @Description 只改会话内的顺序，保存时才写库；source等于target时无操作
// @Tags 课程向导
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path string true "会话ID"
// @Param   body body MoveLessonRequest true "移动参数"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response "下标越界"
// @Router /api/instructor/builder/sessions/{sessionId}/lessons/move [post]
func (c *BuilderController) MoveLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req MoveLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.BuilderService.MoveLesson(ctx.Param("sessionId"), user.UserID, req.Source, req.Target)
	if err != nil {
		handleBuilderError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// Save godoc
// @Summary 保存课时顺序
// @Description 把会话内的顺序一次性持久化；课时列表为空时拒绝。失败时会话顺序保留，可手动重试
// @Tags 课程向导
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response "课时列表为空"
// @Router /api/instructor/builder/sessions/{sessionId}/save [post]
func (c *BuilderController) Save(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.BuilderService.Save(ctx.Request.Context(), ctx.Param("sessionId"), user.UserID)
	if err != nil {
		handleBuilderError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// Back godoc
// @Summary 返回基础信息一步
// @Description 已填写的内容和课时列表都保留
// @Tags 课程向导
// @Produce  json
// @Security BearerAuth
// @Param   sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Router /api/instructor/builder/sessions/{sessionId}/back [post]
func (c *BuilderController) Back(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.BuilderService.Back(ctx.Param("sessionId"), user.UserID)
	if err != nil {
		handleBuilderError(ctx, err)
		return
	}

	util.Success(ctx, view)
}
