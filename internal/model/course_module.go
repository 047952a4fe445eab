package model

// CourseModule 课程内的章节，DisplayOrder 在课程内保持稠密的 1 起始序号
// swagger:model CourseModule
type CourseModule struct {
	BaseModel
	CourseID     uint   `gorm:"index;not null" json:"courseId"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	DisplayOrder int    `gorm:"not null;default:1" json:"displayOrder"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
