package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	MediaService *service.MediaService
}

func NewContentController(mediaService *service.MediaService) *ContentController {
	return &ContentController{MediaService: mediaService}
}

// UploadCourseCover godoc
// @Summary 上传课程封面
// @Tags 媒体
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   file formData file true "封面图片"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "图片格式不支持"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/instructor/courses/{id}/cover [post]
func (c *ContentController) UploadCourseCover(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	url, err := c.MediaService.UploadCourseCover(ctx.Request.Context(), user.UserID, courseID, file)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}

// UploadLessonVideo godoc
// @Summary 上传课时视频
// @Description 服务端探测视频时长并生成缩略图，结果写回课时
// @Tags 媒体
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   lessonId path int true "课时ID"
// @Param   file formData file true "视频文件"
// @Success 200 {object} util.Response{data=service.LessonVideoResult}
// @Failure 400 {object} util.Response "视频格式不支持"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/instructor/courses/{id}/lessons/{lessonId}/video [post]
func (c *ContentController) UploadLessonVideo(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	result, err := c.MediaService.UploadLessonVideo(ctx.Request.Context(), user.UserID, courseID, lessonID, file)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
