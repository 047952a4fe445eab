package repository

import (
	"learnhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type CalendarRepository struct {
	DB *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{DB: db}
}

func (r *CalendarRepository) Create(event *model.CalendarEvent) error {
	return r.DB.Create(event).Error
}

// FindOwned 事件不存在与事件属于他人同样返回 ErrRecordNotFound
func (r *CalendarRepository) FindOwned(id, userID uint) (*model.CalendarEvent, error) {
	var event model.CalendarEvent
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&event).Error
	return &event, err
}

func (r *CalendarRepository) ListByUserInRange(userID uint, from, to time.Time) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	err := r.DB.Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *CalendarRepository) Save(event *model.CalendarEvent) error {
	return r.DB.Save(event).Error
}

func (r *CalendarRepository) Delete(id uint) error {
	return r.DB.Delete(&model.CalendarEvent{}, id).Error
}
