package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

// ReviewRequest 课程评价请求
// swagger:model ReviewRequest
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview godoc
// @Summary 评价课程
// @Description 仅已报名学员可评价，每人每课仅一次
// @Tags 学习
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body ReviewRequest true "评价内容"
// @Success 201 {object} util.Response{data=model.Review}
// @Failure 400 {object} util.Response "已评价过"
// @Failure 403 {object} util.Response "未报名该课程"
// @Router /api/courses/{id}/reviews [post]
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	review, err := c.ReviewService.CreateReview(user.UserID, courseID, req.Rating, req.Comment)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Created(ctx, review)
}

// ListCourseReviews godoc
// @Summary 课程评价列表
// @Tags 课程市场
// @Produce  json
// @Param   id path int true "课程ID"
// @Param   limit query int false "数量上限" default(20)
// @Success 200 {object} util.Response{data=[]model.Review}
// @Router /api/courses/{id}/reviews [get]
func (c *ReviewController) ListCourseReviews(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	reviews, err := c.ReviewService.ListCourseReviews(courseID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, reviews)
}
