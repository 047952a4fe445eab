package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(e *model.Enrollment) error {
	return r.DB.Create(e).Error
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	return &e, err
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("Course").Preload("Course.Instructor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Count(&count).Error
	return count, err
}

// CountByInstructor 讲师全部课程的报名总数
func (r *EnrollmentRepository) CountByInstructor(instructorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ? AND courses.deleted_at IS NULL", instructorID).
		Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) RecentByInstructor(instructorID uint, limit int) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("Course").Preload("User").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ? AND courses.deleted_at IS NULL", instructorID).
		Order("enrollments.created_at DESC").
		Limit(limit).
		Find(&enrollments).Error
	return enrollments, err
}

// RevenueByInstructor 讲师收入：每笔报名按成交时的课程价格累计
func (r *EnrollmentRepository) RevenueByInstructor(instructorID uint) (float64, error) {
	var total float64
	err := r.DB.Model(&model.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ? AND courses.deleted_at IS NULL", instructorID).
		Select("COALESCE(SUM(courses.price), 0)").
		Scan(&total).Error
	return total, err
}

// AverageProgressByCourse 课程完成率指标：全部报名的平均进度
func (r *EnrollmentRepository) AverageProgressByCourse(courseID uint) (float64, error) {
	var avg float64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(AVG(progress), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *EnrollmentRepository) Save(e *model.Enrollment) error {
	return r.DB.Save(e).Error
}
