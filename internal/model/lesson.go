package model

type LessonType string

const (
	LessonVideo      LessonType = "video"
	LessonText       LessonType = "text"
	LessonQuiz       LessonType = "quiz"
	LessonAssignment LessonType = "assignment"
)

// Lesson 章节内的课时，Position 在章节内保持稠密的 1 起始序号
// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID    uint       `gorm:"index;not null" json:"moduleId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Type        LessonType `gorm:"type:varchar(20);default:'video'" json:"type"`
	VideoURL    string     `gorm:"size:255" json:"videoUrl"`
	TextContent string     `gorm:"type:text" json:"textContent"`
	Duration    float64    `gorm:"default:0" json:"duration"` // 视频时长（秒）
	Thumbnail   string     `gorm:"size:255" json:"thumbnail"`
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	Position    int        `gorm:"not null;default:1" json:"position"`
}

func (Lesson) TableName() string {
	return "lessons"
}
