package model

import "time"

type EventType string

const (
	EventLiveSession EventType = "live_session"
	EventDeadline    EventType = "deadline"
	EventOfficeHours EventType = "office_hours"
	EventPersonal    EventType = "personal"
)

// CalendarEvent 用户日程事件，可选关联课程
// swagger:model CalendarEvent
type CalendarEvent struct {
	BaseModel
	UserID    uint      `gorm:"index;not null" json:"userId"`
	CourseID  uint      `gorm:"index" json:"courseId,omitempty"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Type      EventType `gorm:"type:varchar(20);default:'personal'" json:"type"`
	StartTime time.Time `gorm:"index;not null" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`
	Notes     string    `gorm:"type:text" json:"notes"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}
