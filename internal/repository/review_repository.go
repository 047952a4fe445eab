package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	return r.DB.Create(review).Error
}

func (r *ReviewRepository) FindByUserAndCourse(userID, courseID uint) (*model.Review, error) {
	var review model.Review
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&review).Error
	return &review, err
}

func (r *ReviewRepository) ListByCourse(courseID uint, limit int) ([]model.Review, error) {
	var reviews []model.Review
	err := r.DB.Preload("User").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) AverageRating(courseID uint) (float64, error) {
	var avg float64
	err := r.DB.Model(&model.Review{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}

// AverageRatingByInstructor 讲师全部课程的平均评分
func (r *ReviewRepository) AverageRatingByInstructor(instructorID uint) (float64, error) {
	var avg float64
	err := r.DB.Model(&model.Review{}).
		Joins("JOIN courses ON courses.id = reviews.course_id").
		Where("courses.instructor_id = ? AND courses.deleted_at IS NULL", instructorID).
		Select("COALESCE(AVG(reviews.rating), 0)").
		Scan(&avg).Error
	return avg, err
}
