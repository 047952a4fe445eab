package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

// FindOwned 按所有权过滤的读取：课程不存在与课程属于他人返回同样的 ErrRecordNotFound
func (r *CourseRepository) FindOwned(id, instructorID uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ? AND instructor_id = ?", id, instructorID).First(&course).Error
	return &course, err
}

func (r *CourseRepository) FindPublished(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").
		Where("id = ? AND status = ?", id, model.CoursePublished).First(&course).Error
	return &course, err
}

func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

type CourseFilter struct {
	Category string
	Level    string
	Search   string
	Page     int
	Limit    int
}

// ListPublished 课程市场列表，仅返回已发布课程
func (r *CourseRepository) ListPublished(f CourseFilter) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{}).Where("status = ?", model.CoursePublished)

	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Level != "" {
		query = query.Where("level = ?", f.Level)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	var courses []model.Course
	err := query.Preload("Instructor").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).
		Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListPendingReview(limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Instructor").
		Where("status = ?", model.CoursePendingReview).
		Order("updated_at ASC").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountByStatus(status model.CourseStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountByInstructor(instructorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).
		Where("instructor_id = ?", instructorID).Count(&count).Error
	return count, err
}
