package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"
	"strings"

	"gorm.io/gorm"
)

// defaultModuleTitle 向导直接往课程里加课时时使用的首个章节
const defaultModuleTitle = "Module 1"

type CurriculumService struct {
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	LessonRepo *repository.LessonRepository
	DB         *gorm.DB
}

func NewCurriculumService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	db *gorm.DB,
) *CurriculumService {
	return &CurriculumService{
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
		LessonRepo: lessonRepo,
		DB:         db,
	}
}

func (s *CurriculumService) ownedCourse(courseID, instructorID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindOwned(courseID, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// CreateModule 新章节追加到课程末尾（display_order = max+1）
func (s *CurriculumService) CreateModule(courseID, instructorID uint, title, description string) (*model.CourseModule, error) {
	if strings.TrimSpace(title) == "" {
		return nil, util.NewValidationError("module title is required")
	}
	if _, err := s.ownedCourse(courseID, instructorID); err != nil {
		return nil, err
	}

	max, err := s.ModuleRepo.MaxDisplayOrder(courseID)
	if err != nil {
		return nil, err
	}

	m := &model.CourseModule{
		CourseID:     courseID,
		Title:        title,
		Description:  description,
		DisplayOrder: max + 1,
	}
	if err := s.ModuleRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CurriculumService) UpdateModule(moduleID, instructorID uint, title, description string) (*model.CourseModule, error) {
	if strings.TrimSpace(title) == "" {
		return nil, util.NewValidationError("module title is required")
	}

	m, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	if _, err := s.ownedCourse(m.CourseID, instructorID); err != nil {
		return nil, err
	}

	m.Title = title
	m.Description = description
	if err := s.ModuleRepo.Save(m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteModule 删除章节及其课时，并在同一事务内收紧剩余章节的序号
func (s *CurriculumService) DeleteModule(moduleID, instructorID uint) error {
	m, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrModuleNotFound
		}
		return err
	}
	if _, err := s.ownedCourse(m.CourseID, instructorID); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("module_id = ?", moduleID).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.CourseModule{}, moduleID).Error; err != nil {
			return err
		}

		var remaining []model.CourseModule
		if err := tx.Where("course_id = ?", m.CourseID).
			Order("display_order ASC").Find(&remaining).Error; err != nil {
			return err
		}
		for i := range remaining {
			if remaining[i].DisplayOrder != i+1 {
				if err := tx.Model(&model.CourseModule{}).
					Where("id = ?", remaining[i].ID).
					Update("display_order", i+1).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// LessonCreate 创建课时的请求体。ModuleID 为 0 时落入课程的首个章节（必要时创建）。
// Position 为 0 时由服务端取章节内 max(position)+1。
type LessonCreate struct {
	ModuleID    uint             `json:"moduleId"`
	Title       string           `json:"title"`
	Type        model.LessonType `json:"type"`
	VideoURL    string           `json:"videoUrl"`
	TextContent string           `json:"textContent"`
	Position    int              `json:"position"`
}

// CreateLesson 空标题直接拒绝，不触达数据库。
func (s *CurriculumService) CreateLesson(courseID, instructorID uint, input LessonCreate) (*model.Lesson, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, util.NewValidationError("lesson title is required")
	}
	if _, err := s.ownedCourse(courseID, instructorID); err != nil {
		return nil, err
	}

	moduleID := input.ModuleID
	if moduleID == 0 {
		m, err := s.firstOrCreateModule(courseID)
		if err != nil {
			return nil, err
		}
		moduleID = m.ID
	} else {
		m, err := s.ModuleRepo.FindByID(moduleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrModuleNotFound
			}
			return nil, err
		}
		if m.CourseID != courseID {
			return nil, util.ErrModuleNotFound
		}
	}

	position := input.Position
	if position <= 0 {
		max, err := s.LessonRepo.MaxPosition(moduleID)
		if err != nil {
			return nil, err
		}
		position = max + 1
	}

	lessonType := input.Type
	if lessonType == "" {
		lessonType = model.LessonVideo
	}

	lesson := &model.Lesson{
		ModuleID:    moduleID,
		Title:       input.Title,
		Type:        lessonType,
		VideoURL:    input.VideoURL,
		TextContent: input.TextContent,
		Position:    position,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CurriculumService) firstOrCreateModule(courseID uint) (*model.CourseModule, error) {
	m, err := s.ModuleRepo.FirstByCourse(courseID)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &model.CourseModule{
		CourseID:     courseID,
		Title:        defaultModuleTitle,
		DisplayOrder: 1,
	}
	if err := s.ModuleRepo.Create(created); err != nil {
		return nil, err
	}
	return created, nil
}

// ListLessons 课程全部课时，按章节序号、课时序号升序
func (s *CurriculumService) ListLessons(courseID, instructorID uint) ([]model.Lesson, error) {
	if _, err := s.ownedCourse(courseID, instructorID); err != nil {
		return nil, err
	}
	return s.LessonRepo.FindByCourse(courseID)
}

// LessonPosition 批量重排时提交的 {id, position} 对
type LessonPosition struct {
	ID       uint `json:"id" binding:"required"`
	Position int  `json:"position" binding:"required"`
}

// ReorderLessons 一次批量调用整体应用新顺序。要求列表非空、ID 不重复、
// 序号构成稠密的 1..N，且每个课时都属于该课程；整体在单个事务内生效。
func (s *CurriculumService) ReorderLessons(courseID, instructorID uint, order []LessonPosition) error {
	if len(order) == 0 {
		return util.NewValidationError("reorder list must not be empty")
	}
	if _, err := s.ownedCourse(courseID, instructorID); err != nil {
		return err
	}

	seenIDs := make(map[uint]bool, len(order))
	seenPositions := make(map[int]bool, len(order))
	for _, o := range order {
		if seenIDs[o.ID] {
			return util.NewValidationError("duplicate lesson id in reorder list")
		}
		seenIDs[o.ID] = true

		if o.Position < 1 || o.Position > len(order) || seenPositions[o.Position] {
			return util.NewValidationError("positions must form a dense 1..N sequence")
		}
		seenPositions[o.Position] = true
	}

	owned, err := s.LessonRepo.FindByCourse(courseID)
	if err != nil {
		return err
	}
	ownedIDs := make(map[uint]bool, len(owned))
	for _, l := range owned {
		ownedIDs[l.ID] = true
	}
	for _, o := range order {
		if !ownedIDs[o.ID] {
			return util.ErrLessonNotFound
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, o := range order {
			if err := tx.Model(&model.Lesson{}).
				Where("id = ?", o.ID).
				Update("position", o.Position).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		monitoring.CurriculumSaveCounter.WithLabelValues("failure").Inc()
		return err
	}
	monitoring.CurriculumSaveCounter.WithLabelValues("success").Inc()
	return nil
}

// DeleteLesson 删除课时并在同一事务内收紧章节内的剩余序号
func (s *CurriculumService) DeleteLesson(lessonID, instructorID uint) error {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}

	m, err := s.ModuleRepo.FindByID(lesson.ModuleID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(m.CourseID, instructorID); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Lesson{}, lessonID).Error; err != nil {
			return err
		}

		var remaining []model.Lesson
		if err := tx.Where("module_id = ?", lesson.ModuleID).
			Order("position ASC").Find(&remaining).Error; err != nil {
			return err
		}
		for i := range remaining {
			if remaining[i].Position != i+1 {
				if err := tx.Model(&model.Lesson{}).
					Where("id = ?", remaining[i].ID).
					Update("position", i+1).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *CurriculumService) UpdateLesson(lessonID, instructorID uint, input LessonCreate, isPublished *bool) (*model.Lesson, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, util.NewValidationError("lesson title is required")
	}

	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	m, err := s.ModuleRepo.FindByID(lesson.ModuleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(m.CourseID, instructorID); err != nil {
		return nil, err
	}

	lesson.Title = input.Title
	if input.Type != "" {
		lesson.Type = input.Type
	}
	lesson.VideoURL = input.VideoURL
	lesson.TextContent = input.TextContent
	if isPublished != nil {
		lesson.IsPublished = *isPublished
	}

	if err := s.LessonRepo.Save(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}
