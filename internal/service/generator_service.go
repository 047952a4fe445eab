package service

import (
	"context"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gorm.io/gorm"
)

// GeneratorService 把AI大纲落成草稿课程
type GeneratorService struct {
	AIService    *AIService
	ActivityRepo *repository.ActivityRepository
	DB           *gorm.DB
}

func NewGeneratorService(ai *AIService, activityRepo *repository.ActivityRepository, db *gorm.DB) *GeneratorService {
	return &GeneratorService{AIService: ai, ActivityRepo: activityRepo, DB: db}
}

type GenerateRequest struct {
	Content      string `json:"content" binding:"required"`
	Instructions string `json:"instructions"`
}

// GenerateOutline 只生成大纲，不落库，讲师确认后再导入
func (s *GeneratorService) GenerateOutline(ctx context.Context, req GenerateRequest) (*CourseOutline, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, util.NewValidationError("生成素材不能为空")
	}
	return s.AIService.GenerateOutline(ctx, req.Content, req.Instructions)
}

// ImportOutline 把大纲导入为草稿课程，章节和课时在同一事务里写入
func (s *GeneratorService) ImportOutline(ctx context.Context, instructorID uint, outline *CourseOutline) (*model.Course, error) {
	if strings.TrimSpace(outline.Title) == "" {
		return nil, util.NewValidationError("课程标题不能为空")
	}
	if len(outline.Modules) == 0 {
		return nil, util.NewValidationError("大纲至少需要一个章节")
	}

	level := model.CourseLevel(outline.Level)
	switch level {
	case model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced:
	default:
		level = model.LevelBeginner
	}

	category := strings.TrimSpace(outline.Category)
	if category == "" {
		category = "general"
	}

	course := &model.Course{
		InstructorID: instructorID,
		Title:        strings.TrimSpace(outline.Title),
		Description:  outlineDescription(outline),
		Category:     category,
		Level:        level,
		Status:       model.CourseDraft,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return err
		}

		for i, om := range outline.Modules {
			mod := &model.CourseModule{
				CourseID:     course.ID,
				Title:        strings.TrimSpace(om.Title),
				Description:  om.Description,
				DisplayOrder: i + 1,
			}
			if mod.Title == "" {
				mod.Title = "Module " + strconv.Itoa(i+1)
			}
			if err := tx.Create(mod).Error; err != nil {
				return err
			}

			for j, ol := range om.Lessons {
				lessonType := model.LessonType(ol.Type)
				switch lessonType {
				case model.LessonVideo, model.LessonText, model.LessonQuiz, model.LessonAssignment:
				default:
					lessonType = model.LessonText
				}
				lesson := &model.Lesson{
					ModuleID:    mod.ID,
					Title:       strings.TrimSpace(ol.Title),
					Type:        lessonType,
					TextContent: ol.Content,
					Position:    j + 1,
				}
				if lesson.Title == "" {
					lesson.Title = "Lesson " + strconv.Itoa(j+1)
				}
				if err := tx.Create(lesson).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.ActivityRepo.Record(&model.ActivityLog{
		ActorID:     instructorID,
		Action:      "course_generated",
		SubjectType: "course",
		SubjectID:   course.ID,
		Message:     course.Title,
	}); err != nil {
		logger.Log.Warn("记录活动日志失败", zap.Error(err))
	}
	return course, nil
}

// outlineDescription 把学习目标和前置要求并入课程描述
func outlineDescription(outline *CourseOutline) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(outline.Description))
	if len(outline.Objectives) > 0 {
		b.WriteString("\n\n学习目标：\n")
		for _, obj := range outline.Objectives {
			b.WriteString("- " + obj + "\n")
		}
	}
	if len(outline.Prerequisites) > 0 {
		b.WriteString("\n前置要求：\n")
		for _, p := range outline.Prerequisites {
			b.WriteString("- " + p + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}
