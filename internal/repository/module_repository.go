package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(m *model.CourseModule) error {
	return r.DB.Create(m).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.CourseModule, error) {
	var m model.CourseModule
	err := r.DB.First(&m, id).Error
	return &m, err
}

func (r *ModuleRepository) FindByCourse(courseID uint) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("course_id = ?", courseID).
		Order("display_order ASC").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position ASC")
		}).
		Find(&modules).Error
	return modules, err
}

// FirstByCourse 返回课程内序号最小的章节
func (r *ModuleRepository) FirstByCourse(courseID uint) (*model.CourseModule, error) {
	var m model.CourseModule
	err := r.DB.Where("course_id = ?", courseID).
		Order("display_order ASC").First(&m).Error
	return &m, err
}

func (r *ModuleRepository) MaxDisplayOrder(courseID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.CourseModule{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&max).Error
	return max, err
}

func (r *ModuleRepository) Save(m *model.CourseModule) error {
	return r.DB.Save(m).Error
}

func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Select("Lessons").Delete(&model.CourseModule{BaseModel: model.BaseModel{ID: id}}).Error
}
