package model

import "time"

type CourseStatus string

const (
	CourseDraft         CourseStatus = "draft"
	CoursePendingReview CourseStatus = "pending_review"
	CoursePublished     CourseStatus = "published"
	CourseNeedsChanges  CourseStatus = "needs_changes"
)

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

// Course 课程，归属唯一讲师
// swagger:model Course
type Course struct {
	BaseModel
	InstructorID    uint         `gorm:"index;not null" json:"instructorId"`
	Title           string       `gorm:"size:255;not null" json:"title"`
	Description     string       `gorm:"type:text;not null" json:"description"`
	Category        string       `gorm:"size:100;not null;index" json:"category"`
	Level           CourseLevel  `gorm:"type:varchar(20);default:'beginner'" json:"level"`
	Tags            string       `gorm:"size:500" json:"tags"` // 逗号分隔
	Price           float64      `gorm:"default:0" json:"price"`
	ThumbnailURL    string       `gorm:"size:255" json:"thumbnailUrl"`
	PromoVideoURL   string       `gorm:"size:255" json:"promoVideoUrl"`
	Status          CourseStatus `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	RejectionReason string       `gorm:"type:text" json:"rejectionReason,omitempty"`
	ReviewedBy      uint         `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time   `json:"reviewedAt,omitempty"`

	Instructor *User          `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Modules    []CourseModule `gorm:"constraint:OnDelete:CASCADE" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// MajorFieldsDiffer 比较触发重新审核的关键字段
func (c *Course) MajorFieldsDiffer(title, description, category string, level CourseLevel, price float64) bool {
	return c.Title != title ||
		c.Description != description ||
		c.Category != category ||
		c.Level != level ||
		c.Price != price
}
