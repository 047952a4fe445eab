package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const courseMetricsTTL = 5 * time.Minute

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	ModuleRepo     *repository.ModuleRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ReviewRepo     *repository.ReviewRepository
	ActivityRepo   *repository.ActivityRepository
	Redis          *redis.Client
	DB             *gorm.DB
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	reviewRepo *repository.ReviewRepository,
	activityRepo *repository.ActivityRepository,
	rdb *redis.Client,
	db *gorm.DB,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		ModuleRepo:     moduleRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		ReviewRepo:     reviewRepo,
		ActivityRepo:   activityRepo,
		Redis:          rdb,
		DB:             db,
	}
}

// CourseInput 创建/更新课程的请求体
type CourseInput struct {
	Title         string            `json:"title" binding:"required"`
	Description   string            `json:"description" binding:"required"`
	Category      string            `json:"category" binding:"required"`
	Level         model.CourseLevel `json:"level" binding:"required,oneof=beginner intermediate advanced"`
	Tags          []string          `json:"tags"`
	Price         float64           `json:"price"`
	ThumbnailURL  string            `json:"thumbnailUrl"`
	PromoVideoURL string            `json:"promoVideoUrl"`
}

// CourseMetrics 课程详情附带的三项派生指标
type CourseMetrics struct {
	EnrollmentCount int64   `json:"enrollmentCount"`
	AverageRating   float64 `json:"averageRating"`
	CompletionRate  float64 `json:"completionRate"`
}

// CourseDetail 课程行与派生指标的聚合
type CourseDetail struct {
	model.Course
	CourseMetrics
	Modules []model.CourseModule `json:"modules"`
}

func validateCourseInput(input CourseInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return util.NewValidationError("title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return util.NewValidationError("description is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return util.NewValidationError("category is required")
	}
	switch input.Level {
	case model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced:
	default:
		return util.NewValidationError("level must be one of beginner, intermediate, advanced")
	}
	if input.Price < 0 {
		return util.NewValidationError("price must not be negative")
	}
	return nil
}

// CreateCourse 创建草稿课程并指定唯一归属讲师
func (s *CourseService) CreateCourse(instructorID uint, input CourseInput) (*model.Course, error) {
	if err := validateCourseInput(input); err != nil {
		return nil, err
	}

	course := &model.Course{
		InstructorID:  instructorID,
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		Level:         input.Level,
		Tags:          strings.Join(input.Tags, ","),
		Price:         input.Price,
		ThumbnailURL:  input.ThumbnailURL,
		PromoVideoURL: input.PromoVideoURL,
		Status:        model.CourseDraft,
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}

	s.recordActivity(instructorID, "course_created", course.ID, fmt.Sprintf("Course %q created", course.Title))
	return course, nil
}

// GetOwnedCourseDetail 所有权范围内的课程详情。
// 三项指标各自独立查询、独立兜底为 0，任何单项失败都不影响整个请求。
func (s *CourseService) GetOwnedCourseDetail(ctx context.Context, courseID, instructorID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindOwned(courseID, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	modules, err := s.ModuleRepo.FindByCourse(courseID)
	if err != nil {
		modules = nil
	}

	return &CourseDetail{
		Course:        *course,
		CourseMetrics: s.courseMetrics(ctx, courseID),
		Modules:       modules,
	}, nil
}

func (s *CourseService) metricsCacheKey(courseID uint) string {
	return fmt.Sprintf("course:%d:metrics", courseID)
}

func (s *CourseService) courseMetrics(ctx context.Context, courseID uint) CourseMetrics {
	key := s.metricsCacheKey(courseID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var m CourseMetrics
			if json.Unmarshal([]byte(cached), &m) == nil {
				return m
			}
		}
	}

	var m CourseMetrics

	if count, err := s.EnrollmentRepo.CountByCourse(courseID); err != nil {
		logger.Log.Warn("enrollment count query failed, defaulting to 0",
			zap.Uint("courseId", courseID), zap.Error(err))
	} else {
		m.EnrollmentCount = count
	}

	if rating, err := s.ReviewRepo.AverageRating(courseID); err != nil {
		logger.Log.Warn("average rating query failed, defaulting to 0",
			zap.Uint("courseId", courseID), zap.Error(err))
	} else {
		m.AverageRating = rating
	}

	if rate, err := s.EnrollmentRepo.AverageProgressByCourse(courseID); err != nil {
		logger.Log.Warn("completion rate query failed, defaulting to 0",
			zap.Uint("courseId", courseID), zap.Error(err))
	} else {
		m.CompletionRate = rate
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(m); err == nil {
			s.Redis.Set(ctx, key, payload, courseMetricsTTL)
		}
	}

	return m
}

func (s *CourseService) invalidateMetrics(ctx context.Context, courseID uint) {
	if s.Redis != nil {
		s.Redis.Del(ctx, s.metricsCacheKey(courseID))
	}
}

// UpdateResult 课程更新的响应
type UpdateResult struct {
	Message            string `json:"message"`
	RequiresReapproval bool   `json:"requiresReapproval"`
}

// UpdateCourse 关键字段（标题/描述/分类/难度/价格）任一变化即触发重新审核：
// 持久化状态被强制置为 pending_review，忽略请求自带的状态；否则保留现有状态。
func (s *CourseService) UpdateCourse(ctx context.Context, courseID, instructorID uint, input CourseInput) (*UpdateResult, error) {
	if err := validateCourseInput(input); err != nil {
		return nil, err
	}

	course, err := s.CourseRepo.FindOwned(courseID, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	requiresReapproval := course.MajorFieldsDiffer(
		input.Title, input.Description, input.Category, input.Level, input.Price)

	course.Title = input.Title
	course.Description = input.Description
	course.Category = input.Category
	course.Level = input.Level
	course.Tags = strings.Join(input.Tags, ",")
	course.Price = input.Price
	course.ThumbnailURL = input.ThumbnailURL
	course.PromoVideoURL = input.PromoVideoURL

	if requiresReapproval {
		course.Status = model.CoursePendingReview
	}

	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}

	s.invalidateMetrics(ctx, courseID)

	message := "Course updated"
	if requiresReapproval {
		message = "Course updated and resubmitted for review"
	}
	return &UpdateResult{Message: message, RequiresReapproval: requiresReapproval}, nil
}

// ModuleInput 整体替换课程大纲时的章节定义
type ModuleInput struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	Lessons     []LessonInput `json:"lessons"`
}

// LessonInput 章节内的课时定义
type LessonInput struct {
	Title       string           `json:"title" binding:"required"`
	Type        model.LessonType `json:"type"`
	VideoURL    string           `json:"videoUrl"`
	TextContent string           `json:"textContent"`
	IsPublished bool             `json:"isPublished"`
}

// ReplaceCurriculum 整体替换课程大纲：单个事务内删除旧章节课时并按稠密序号重建，
// 不存在元数据已更新而大纲半删半插的中间状态。
func (s *CourseService) ReplaceCurriculum(ctx context.Context, courseID, instructorID uint, modules []ModuleInput) error {
	if _, err := s.CourseRepo.FindOwned(courseID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	for _, m := range modules {
		if strings.TrimSpace(m.Title) == "" {
			return util.NewValidationError("module title is required")
		}
		for _, l := range m.Lessons {
			if strings.TrimSpace(l.Title) == "" {
				return util.NewValidationError("lesson title is required")
			}
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uint
		if err := tx.Model(&model.CourseModule{}).
			Where("course_id = ?", courseID).
			Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}

		if len(moduleIDs) > 0 {
			if err := tx.Where("module_id IN ?", moduleIDs).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", courseID).Delete(&model.CourseModule{}).Error; err != nil {
				return err
			}
		}

		for i, m := range modules {
			courseModule := model.CourseModule{
				CourseID:     courseID,
				Title:        m.Title,
				Description:  m.Description,
				DisplayOrder: i + 1,
			}
			if err := tx.Create(&courseModule).Error; err != nil {
				return err
			}

			for j, l := range m.Lessons {
				lessonType := l.Type
				if lessonType == "" {
					lessonType = model.LessonVideo
				}
				lesson := model.Lesson{
					ModuleID:    courseModule.ID,
					Title:       l.Title,
					Type:        lessonType,
					VideoURL:    l.VideoURL,
					TextContent: l.TextContent,
					IsPublished: l.IsPublished,
					Position:    j + 1,
				}
				if err := tx.Create(&lesson).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateMetrics(ctx, courseID)
	return nil
}

// SubmitForReview 讲师将草稿或被退回的课程提交审核
func (s *CourseService) SubmitForReview(courseID, instructorID uint) error {
	course, err := s.CourseRepo.FindOwned(courseID, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	if course.Status != model.CourseDraft && course.Status != model.CourseNeedsChanges {
		return util.NewValidationError("only draft or needs_changes courses can be submitted for review")
	}

	course.Status = model.CoursePendingReview
	if err := s.CourseRepo.Save(course); err != nil {
		return err
	}

	s.recordActivity(instructorID, "course_submitted", course.ID, fmt.Sprintf("Course %q submitted for review", course.Title))
	return nil
}

func (s *CourseService) DeleteCourse(courseID, instructorID uint) error {
	if _, err := s.CourseRepo.FindOwned(courseID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.CourseRepo.Delete(courseID)
}

func (s *CourseService) ListMyCourses(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByInstructor(instructorID)
}

// ListMarketplace 课程市场：仅已发布课程，支持分类/难度/搜索过滤
func (s *CourseService) ListMarketplace(filter repository.CourseFilter) ([]model.Course, int64, error) {
	return s.CourseRepo.ListPublished(filter)
}

// GetPublicCourse 市场课程详情，大纲中只透出已发布课时
func (s *CourseService) GetPublicCourse(ctx context.Context, courseID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindPublished(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	modules, err := s.ModuleRepo.FindByCourse(courseID)
	if err != nil {
		modules = nil
	}
	for i := range modules {
		published := modules[i].Lessons[:0]
		for _, l := range modules[i].Lessons {
			if l.IsPublished {
				published = append(published, l)
			}
		}
		modules[i].Lessons = published
	}

	return &CourseDetail{
		Course:        *course,
		CourseMetrics: s.courseMetrics(ctx, courseID),
		Modules:       modules,
	}, nil
}

func (s *CourseService) recordActivity(actorID uint, action string, subjectID uint, message string) {
	log := &model.ActivityLog{
		ActorID:     actorID,
		Action:      action,
		SubjectType: "course",
		SubjectID:   subjectID,
		Message:     message,
	}
	if err := s.ActivityRepo.Record(log); err != nil {
		logger.Log.Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}
