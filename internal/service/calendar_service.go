package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"strings"
	"time"

	"gorm.io/gorm"
)

type CalendarService struct {
	CalendarRepo *repository.CalendarRepository
}

func NewCalendarService(calendarRepo *repository.CalendarRepository) *CalendarService {
	return &CalendarService{CalendarRepo: calendarRepo}
}

// EventInput 日程事件的请求体
type EventInput struct {
	Title     string          `json:"title" binding:"required"`
	Type      model.EventType `json:"type"`
	CourseID  uint            `json:"courseId"`
	StartTime time.Time       `json:"startTime" binding:"required"`
	EndTime   time.Time       `json:"endTime" binding:"required"`
	Notes     string          `json:"notes"`
}

func validateEventInput(input EventInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return util.NewValidationError("title is required")
	}
	if !input.EndTime.After(input.StartTime) {
		return util.NewValidationError("endTime must be after startTime")
	}
	return nil
}

func (s *CalendarService) CreateEvent(userID uint, input EventInput) (*model.CalendarEvent, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	eventType := input.Type
	if eventType == "" {
		eventType = model.EventPersonal
	}

	event := &model.CalendarEvent{
		UserID:    userID,
		CourseID:  input.CourseID,
		Title:     input.Title,
		Type:      eventType,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Notes:     input.Notes,
	}
	if err := s.CalendarRepo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents 按起始时间所在区间查询，默认当前月
func (s *CalendarService) ListEvents(userID uint, from, to time.Time) ([]model.CalendarEvent, error) {
	if from.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if to.IsZero() || !to.After(from) {
		to = from.AddDate(0, 1, 0)
	}
	return s.CalendarRepo.ListByUserInRange(userID, from, to)
}

func (s *CalendarService) UpdateEvent(eventID, userID uint, input EventInput) (*model.CalendarEvent, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event, err := s.CalendarRepo.FindOwned(eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEventNotFound
		}
		return nil, err
	}

	event.Title = input.Title
	if input.Type != "" {
		event.Type = input.Type
	}
	event.CourseID = input.CourseID
	event.StartTime = input.StartTime
	event.EndTime = input.EndTime
	event.Notes = input.Notes

	if err := s.CalendarRepo.Save(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *CalendarService) DeleteEvent(eventID, userID uint) error {
	if _, err := s.CalendarRepo.FindOwned(eventID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrEventNotFound
		}
		return err
	}
	return s.CalendarRepo.Delete(eventID)
}
