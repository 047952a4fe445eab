package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) FindByModule(moduleID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("module_id = ?", moduleID).
		Order("position ASC").Find(&lessons).Error
	return lessons, err
}

// FindByCourse 课程下的全部课时，按章节序号、课时序号升序
func (r *LessonRepository) FindByCourse(courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND course_modules.deleted_at IS NULL", courseID).
		Order("course_modules.display_order ASC, lessons.position ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) MaxPosition(moduleID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.Lesson{}).
		Where("module_id = ?", moduleID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}

func (r *LessonRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND course_modules.deleted_at IS NULL", courseID).
		Count(&count).Error
	return count, err
}

func (r *LessonRepository) Save(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Lesson{}, id).Error
}
