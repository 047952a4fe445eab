package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type CalendarController struct {
	CalendarService *service.CalendarService
}

func NewCalendarController(calendarService *service.CalendarService) *CalendarController {
	return &CalendarController{CalendarService: calendarService}
}

// CreateEvent godoc
// @Summary 创建日程
// @Tags 日程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.EventInput true "日程信息"
// @Success 201 {object} util.Response{data=model.CalendarEvent}
// @Failure 400 {object} util.Response "时间区间不合法"
// @Router /api/calendar/events [post]
func (c *CalendarController) CreateEvent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.EventInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.CalendarService.CreateEvent(user.UserID, input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Created(ctx, event)
}

// ListEvents godoc
// @Summary 日程列表
// @Description 不传时间区间时默认返回当月日程
// @Tags 日程
// @Produce  json
// @Security BearerAuth
// @Param   from query string false "起始时间（RFC3339）"
// @Param   to query string false "结束时间（RFC3339）"
// @Success 200 {object} util.Response{data=[]model.CalendarEvent}
// @Router /api/calendar/events [get]
func (c *CalendarController) ListEvents(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var from, to time.Time
	if v := ctx.Query("from"); v != "" {
		from, _ = time.Parse(time.RFC3339, v)
	}
	if v := ctx.Query("to"); v != "" {
		to, _ = time.Parse(time.RFC3339, v)
	}

	events, err := c.CalendarService.ListEvents(user.UserID, from, to)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, events)
}

// UpdateEvent godoc
// @Summary 更新日程
// @Tags 日程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "日程ID"
// @Param   body body service.EventInput true "日程信息"
// @Success 200 {object} util.Response{data=model.CalendarEvent}
// @Failure 404 {object} util.Response "日程不存在"
// @Router /api/calendar/events/{id} [put]
func (c *CalendarController) UpdateEvent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.EventInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	eventID := util.MustParseUint(ctx.Param("id"))
	event, err := c.CalendarService.UpdateEvent(eventID, user.UserID, input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, event)
}

// DeleteEvent godoc
// @Summary 删除日程
// @Tags 日程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "日程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "日程不存在"
// @Router /api/calendar/events/{id} [delete]
func (c *CalendarController) DeleteEvent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	eventID := util.MustParseUint(ctx.Param("id"))
	if err := c.CalendarService.DeleteEvent(eventID, user.UserID); err != nil {
		handleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
