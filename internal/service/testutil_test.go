package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.Review{},
		&model.CalendarEvent{},
		&model.ActivityLog{},
	))

	return db
}

func newCourseService(db *gorm.DB) *CourseService {
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewReviewRepository(db),
		repository.NewActivityRepository(db),
		nil,
		db,
	)
}

func newCurriculumService(db *gorm.DB) *CurriculumService {
	return NewCurriculumService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
		db,
	)
}

func newEnrollmentService(db *gorm.DB) *EnrollmentService {
	return NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewCourseRepository(db),
		repository.NewLessonRepository(db),
		repository.NewActivityRepository(db),
	)
}

func seedInstructor(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:     "Test Instructor",
		Email:    email,
		Password: "hashed",
		Role:     model.Instructor,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedStudent(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:     "Test Student",
		Email:    email,
		Password: "hashed",
		Role:     model.Student,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, instructorID uint, status model.CourseStatus) *model.Course {
	t.Helper()
	course := &model.Course{
		InstructorID: instructorID,
		Title:        "Intro to Go",
		Description:  "A course about Go",
		Category:     "programming",
		Level:        model.LevelBeginner,
		Price:        49.9,
		Status:       status,
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func seedModule(t *testing.T, db *gorm.DB, courseID uint, title string, order int) *model.CourseModule {
	t.Helper()
	m := &model.CourseModule{
		CourseID:     courseID,
		Title:        title,
		DisplayOrder: order,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedLesson(t *testing.T, db *gorm.DB, moduleID uint, title string, position int) *model.Lesson {
	t.Helper()
	l := &model.Lesson{
		ModuleID: moduleID,
		Title:    title,
		Type:     model.LessonVideo,
		Position: position,
	}
	require.NoError(t, db.Create(l).Error)
	return l
}
