package model

// Review 每个学员对每门课程至多一条评价，Rating 取值 1-5
// swagger:model Review
type Review struct {
	BaseModel
	UserID   uint   `gorm:"index:idx_review_user_course,unique;not null" json:"userId"`
	CourseID uint   `gorm:"index:idx_review_user_course,unique;not null" json:"courseId"`
	Rating   int    `gorm:"not null" json:"rating"`
	Comment  string `gorm:"type:text" json:"comment"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
