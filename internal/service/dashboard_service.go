package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
)

type DashboardService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ReviewRepo     *repository.ReviewRepository
}

func NewDashboardService(
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	reviewRepo *repository.ReviewRepository,
) *DashboardService {
	return &DashboardService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		ReviewRepo:     reviewRepo,
	}
}

// InstructorDashboard 讲师工作台的聚合数据
type InstructorDashboard struct {
	CourseCount       int64              `json:"courseCount"`
	TotalStudents     int64              `json:"totalStudents"`
	TotalRevenue      float64            `json:"totalRevenue"`
	AverageRating     float64            `json:"averageRating"`
	Courses           []CourseStats      `json:"courses"`
	RecentEnrollments []model.Enrollment `json:"recentEnrollments"`
}

// CourseStats 单门课程的统计卡片
type CourseStats struct {
	Course          model.Course `json:"course"`
	EnrollmentCount int64        `json:"enrollmentCount"`
	AverageRating   float64      `json:"averageRating"`
	CompletionRate  float64      `json:"completionRate"`
}

// GetInstructorDashboard 每个区块独立查询、失败时退回零值，不让单项失败拖垮整个接口
func (s *DashboardService) GetInstructorDashboard(instructorID uint) (*InstructorDashboard, error) {
	dashboard := &InstructorDashboard{}

	if count, err := s.CourseRepo.CountByInstructor(instructorID); err != nil {
		logger.Log.Warn("course count query failed", zap.Error(err))
	} else {
		dashboard.CourseCount = count
	}

	if students, err := s.EnrollmentRepo.CountByInstructor(instructorID); err != nil {
		logger.Log.Warn("student count query failed", zap.Error(err))
	} else {
		dashboard.TotalStudents = students
	}

	if revenue, err := s.EnrollmentRepo.RevenueByInstructor(instructorID); err != nil {
		logger.Log.Warn("revenue query failed", zap.Error(err))
	} else {
		dashboard.TotalRevenue = revenue
	}

	if rating, err := s.ReviewRepo.AverageRatingByInstructor(instructorID); err != nil {
		logger.Log.Warn("instructor rating query failed", zap.Error(err))
	} else {
		dashboard.AverageRating = rating
	}

	courses, err := s.CourseRepo.ListByInstructor(instructorID)
	if err != nil {
		logger.Log.Warn("course list query failed", zap.Error(err))
		courses = nil
	}

	dashboard.Courses = make([]CourseStats, 0, len(courses))
	for _, course := range courses {
		stats := CourseStats{Course: course}
		if count, err := s.EnrollmentRepo.CountByCourse(course.ID); err == nil {
			stats.EnrollmentCount = count
		}
		if rating, err := s.ReviewRepo.AverageRating(course.ID); err == nil {
			stats.AverageRating = rating
		}
		if rate, err := s.EnrollmentRepo.AverageProgressByCourse(course.ID); err == nil {
			stats.CompletionRate = rate
		}
		dashboard.Courses = append(dashboard.Courses, stats)
	}

	if recent, err := s.EnrollmentRepo.RecentByInstructor(instructorID, 10); err != nil {
		logger.Log.Warn("recent enrollments query failed", zap.Error(err))
	} else {
		dashboard.RecentEnrollments = recent
	}

	return dashboard, nil
}
