package model

import "time"

// Enrollment 学员与课程的报名关系，Progress 为 0-100 的完成百分比
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID      uint       `gorm:"index:idx_user_course,unique;not null" json:"userId"`
	CourseID    uint       `gorm:"index:idx_user_course,unique;not null" json:"courseId"`
	Progress    float64    `gorm:"default:0" json:"progress"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// LessonProgress 单个课时的完成记录，驱动完成率指标
type LessonProgress struct {
	BaseModel
	EnrollmentID uint       `gorm:"index:idx_enrollment_lesson,unique;not null" json:"enrollmentId"`
	LessonID     uint       `gorm:"index:idx_enrollment_lesson,unique;not null" json:"lessonId"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
