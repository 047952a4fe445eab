package model

// ActivityLog 平台操作流水，供管理后台的最近动态展示。
// ID用UUID，流水会原样出现在管理端接口里，自增ID会暴露平台总操作量
// swagger:model ActivityLog
type ActivityLog struct {
	UUIDBase
	ActorID     uint   `gorm:"index" json:"actorId"`
	Action      string `gorm:"size:100;not null" json:"action"` // course_created / course_published / enrollment ...
	SubjectType string `gorm:"size:50" json:"subjectType"`
	SubjectID   uint   `json:"subjectId"`
	Message     string `gorm:"size:500" json:"message"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
