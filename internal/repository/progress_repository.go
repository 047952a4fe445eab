package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Create(p *model.LessonProgress) error {
	return r.DB.Create(p).Error
}

func (r *ProgressRepository) FindByEnrollmentAndLesson(enrollmentID, lessonID uint) (*model.LessonProgress, error) {
	var p model.LessonProgress
	err := r.DB.Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).First(&p).Error
	return &p, err
}

func (r *ProgressRepository) CountByEnrollment(enrollmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("enrollment_id = ?", enrollmentID).Count(&count).Error
	return count, err
}

func (r *ProgressRepository) ListByEnrollment(enrollmentID uint) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	err := r.DB.Where("enrollment_id = ?", enrollmentID).Find(&rows).Error
	return rows, err
}
