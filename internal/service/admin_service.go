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

const adminDashboardCacheKey = "admin:dashboard"
const adminDashboardTTL = time.Minute

type AdminService struct {
	UserRepo     *repository.UserRepository
	CourseRepo   *repository.CourseRepository
	EnrollRepo   *repository.EnrollmentRepository
	ActivityRepo *repository.ActivityRepository
	Redis        *redis.Client
	DB           *gorm.DB
	StorageType  string
}

func NewAdminService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	enrollRepo *repository.EnrollmentRepository,
	activityRepo *repository.ActivityRepository,
	rdb *redis.Client,
	db *gorm.DB,
	storageType string,
) *AdminService {
	return &AdminService{
		UserRepo:     userRepo,
		CourseRepo:   courseRepo,
		EnrollRepo:   enrollRepo,
		ActivityRepo: activityRepo,
		Redis:        rdb,
		DB:           db,
		StorageType:  storageType,
	}
}

// PlatformMetrics 平台总量指标
type PlatformMetrics struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalInstructors int64 `json:"totalInstructors"`
	TotalCourses     int64 `json:"totalCourses"`
	PublishedCourses int64 `json:"publishedCourses"`
	TotalEnrollments int64 `json:"totalEnrollments"`
}

// SystemHealth 各依赖组件的健康状态
type SystemHealth struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
	Storage  string `json:"storage"`
}

// AdminDashboard 管理后台聚合视图：指标、审核队列、系统健康、最近动态。
// 每个区块独立获取，单块失败退回零值，不使整个请求失败。
type AdminDashboard struct {
	Metrics        PlatformMetrics     `json:"metrics"`
	ApprovalQueue  []model.Course      `json:"approvalQueue"`
	Health         SystemHealth        `json:"health"`
	RecentActivity []model.ActivityLog `json:"recentActivity"`
}

func (s *AdminService) GetDashboard(ctx context.Context) (*AdminDashboard, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, adminDashboardCacheKey).Result(); err == nil {
			var d AdminDashboard
			if json.Unmarshal([]byte(cached), &d) == nil {
				return &d, nil
			}
		}
	}

	dashboard := &AdminDashboard{
		Metrics:        s.platformMetrics(),
		Health:         s.systemHealth(ctx),
		ApprovalQueue:  []model.Course{},
		RecentActivity: []model.ActivityLog{},
	}

	if queue, err := s.CourseRepo.ListPendingReview(20); err != nil {
		logger.Log.Warn("approval queue query failed", zap.Error(err))
	} else {
		dashboard.ApprovalQueue = queue
	}

	if activity, err := s.ActivityRepo.Recent(20); err != nil {
		logger.Log.Warn("recent activity query failed", zap.Error(err))
	} else {
		dashboard.RecentActivity = activity
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(dashboard); err == nil {
			s.Redis.Set(ctx, adminDashboardCacheKey, payload, adminDashboardTTL)
		}
	}

	return dashboard, nil
}

func (s *AdminService) platformMetrics() PlatformMetrics {
	var m PlatformMetrics

	if count, err := s.UserRepo.Count(); err != nil {
		logger.Log.Warn("user count query failed", zap.Error(err))
	} else {
		m.TotalUsers = count
	}

	if count, err := s.UserRepo.CountByRole(model.Instructor); err != nil {
		logger.Log.Warn("instructor count query failed", zap.Error(err))
	} else {
		m.TotalInstructors = count
	}

	if count, err := s.CourseRepo.Count(); err != nil {
		logger.Log.Warn("course count query failed", zap.Error(err))
	} else {
		m.TotalCourses = count
	}

	if count, err := s.CourseRepo.CountByStatus(model.CoursePublished); err != nil {
		logger.Log.Warn("published course count query failed", zap.Error(err))
	} else {
		m.PublishedCourses = count
	}

	if count, err := s.EnrollRepo.Count(); err != nil {
		logger.Log.Warn("enrollment count query failed", zap.Error(err))
	} else {
		m.TotalEnrollments = count
	}

	return m
}

func (s *AdminService) systemHealth(ctx context.Context) SystemHealth {
	health := SystemHealth{Database: "down", Redis: "down", Storage: s.StorageType}
	if health.Storage == "" {
		health.Storage = "local"
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		if sqlDB.Ping() == nil {
			health.Database = "up"
		}
	}

	if s.Redis != nil {
		if _, err := s.Redis.Ping(ctx).Result(); err == nil {
			health.Redis = "up"
		}
	}

	return health
}

// ApproveCourse 审核通过：pending_review → published，盖上审核人与时间
func (s *AdminService) ApproveCourse(courseID, reviewerID uint) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	if course.Status != model.CoursePendingReview {
		return util.NewValidationError("course is not pending review")
	}

	now := time.Now()
	course.Status = model.CoursePublished
	course.RejectionReason = ""
	course.ReviewedBy = reviewerID
	course.ReviewedAt = &now

	if err := s.CourseRepo.Save(course); err != nil {
		return err
	}

	s.recordReviewActivity(reviewerID, "course_published", course)
	return nil
}

// RejectCourse 审核退回：pending_review → needs_changes，附退回原因
func (s *AdminService) RejectCourse(courseID, reviewerID uint, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return util.NewValidationError("rejection reason is required")
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	if course.Status != model.CoursePendingReview {
		return util.NewValidationError("course is not pending review")
	}

	now := time.Now()
	course.Status = model.CourseNeedsChanges
	course.RejectionReason = reason
	course.ReviewedBy = reviewerID
	course.ReviewedAt = &now

	if err := s.CourseRepo.Save(course); err != nil {
		return err
	}

	s.recordReviewActivity(reviewerID, "course_rejected", course)
	return nil
}

func (s *AdminService) recordReviewActivity(reviewerID uint, action string, course *model.Course) {
	log := &model.ActivityLog{
		ActorID:     reviewerID,
		Action:      action,
		SubjectType: "course",
		SubjectID:   course.ID,
		Message:     fmt.Sprintf("Course %q %s", course.Title, strings.TrimPrefix(action, "course_")),
	}
	if err := s.ActivityRepo.Record(log); err != nil {
		logger.Log.Warn("failed to record review activity", zap.Error(err))
	}

	if s.Redis != nil {
		s.Redis.Del(context.Background(), adminDashboardCacheKey)
	}
}
