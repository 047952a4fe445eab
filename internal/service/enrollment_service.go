package service

import (
	"errors"
	"fmt"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	ActivityRepo   *repository.ActivityRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	activityRepo *repository.ActivityRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		ActivityRepo:   activityRepo,
	}
}

// Enroll 报名已发布课程。重复报名返回已有记录，不报错。
func (s *EnrollmentService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotPublished
	}

	if existing, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}

	log := &model.ActivityLog{
		ActorID:     userID,
		Action:      "enrollment",
		SubjectType: "course",
		SubjectID:   courseID,
		Message:     fmt.Sprintf("New enrollment in course %q", course.Title),
	}
	if err := s.ActivityRepo.Record(log); err != nil {
		logger.Log.Warn("failed to record enrollment activity", zap.Error(err))
	}

	return enrollment, nil
}

func (s *EnrollmentService) ListMyEnrollments(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}

// CompleteLesson 标记课时完成并重算报名进度；重复标记是幂等的
func (s *EnrollmentService) CompleteLesson(userID, courseID, lessonID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	courseLessons, err := s.LessonRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	belongs := false
	for _, l := range courseLessons {
		if l.ID == lesson.ID {
			belongs = true
			break
		}
	}
	if !belongs {
		return nil, util.ErrLessonNotFound
	}

	if _, err := s.ProgressRepo.FindByEnrollmentAndLesson(enrollment.ID, lessonID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		now := time.Now()
		progress := &model.LessonProgress{
			EnrollmentID: enrollment.ID,
			LessonID:     lessonID,
			CompletedAt:  &now,
		}
		if err := s.ProgressRepo.Create(progress); err != nil {
			return nil, err
		}
	}

	return s.recomputeProgress(enrollment, int64(len(courseLessons)))
}

func (s *EnrollmentService) recomputeProgress(enrollment *model.Enrollment, totalLessons int64) (*model.Enrollment, error) {
	if totalLessons == 0 {
		return enrollment, nil
	}

	completed, err := s.ProgressRepo.CountByEnrollment(enrollment.ID)
	if err != nil {
		return nil, err
	}

	enrollment.Progress = float64(completed) / float64(totalLessons) * 100
	if enrollment.Progress >= 100 && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now
	}

	if err := s.EnrollmentRepo.Save(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}
