package service

import (
	"context"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminService(db *gorm.DB) *AdminService {
	return NewAdminService(
		repository.NewUserRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewActivityRepository(db),
		nil,
		db,
		"local",
	)
}

func seedAdmin(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	admin := &model.User{Name: "Admin", Email: "admin@test.com", Password: "hashed", Role: model.Admin}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func TestApproveCourseTransition(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	admin := seedAdmin(t, db)
	course := seedCourse(t, db, owner.ID, model.CoursePendingReview)

	require.NoError(t, svc.ApproveCourse(course.ID, admin.ID))

	var updated model.Course
	require.NoError(t, db.First(&updated, course.ID).Error)
	assert.Equal(t, model.CoursePublished, updated.Status)
	assert.Equal(t, admin.ID, updated.ReviewedBy)
	assert.NotNil(t, updated.ReviewedAt)
	assert.Empty(t, updated.RejectionReason)
}

func TestApproveCourseStatusGuard(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	admin := seedAdmin(t, db)

	draft := seedCourse(t, db, owner.ID, model.CourseDraft)
	assert.True(t, util.IsValidationError(svc.ApproveCourse(draft.ID, admin.ID)))

	assert.ErrorIs(t, svc.ApproveCourse(9999, admin.ID), util.ErrCourseNotFound)
}

func TestRejectCourseRequiresReason(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	admin := seedAdmin(t, db)
	course := seedCourse(t, db, owner.ID, model.CoursePendingReview)

	assert.True(t, util.IsValidationError(svc.RejectCourse(course.ID, admin.ID, "  ")))

	require.NoError(t, svc.RejectCourse(course.ID, admin.ID, "大纲太单薄"))

	var updated model.Course
	require.NoError(t, db.First(&updated, course.ID).Error)
	assert.Equal(t, model.CourseNeedsChanges, updated.Status)
	assert.Equal(t, "大纲太单薄", updated.RejectionReason)
}

func TestRejectThenApproveClearsReason(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	admin := seedAdmin(t, db)
	course := seedCourse(t, db, owner.ID, model.CoursePendingReview)

	require.NoError(t, svc.RejectCourse(course.ID, admin.ID, "补充介绍视频"))

	// 讲师整改后重新提交
	require.NoError(t, db.Model(&model.Course{}).
		Where("id = ?", course.ID).Update("status", model.CoursePendingReview).Error)
	require.NoError(t, svc.ApproveCourse(course.ID, admin.ID))

	var updated model.Course
	require.NoError(t, db.First(&updated, course.ID).Error)
	assert.Equal(t, model.CoursePublished, updated.Status)
	assert.Empty(t, updated.RejectionReason)
}

func TestAdminDashboardAggregates(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	student := seedStudent(t, db, "s@test.com")

	published := seedCourse(t, db, owner.ID, model.CoursePublished)
	pending := seedCourse(t, db, owner.ID, model.CoursePendingReview)
	seedCourse(t, db, owner.ID, model.CourseDraft)
	require.NoError(t, db.Create(&model.Enrollment{UserID: student.ID, CourseID: published.ID}).Error)

	dashboard, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), dashboard.Metrics.TotalUsers)
	assert.Equal(t, int64(1), dashboard.Metrics.TotalInstructors)
	assert.Equal(t, int64(3), dashboard.Metrics.TotalCourses)
	assert.Equal(t, int64(1), dashboard.Metrics.PublishedCourses)
	assert.Equal(t, int64(1), dashboard.Metrics.TotalEnrollments)

	require.Len(t, dashboard.ApprovalQueue, 1)
	assert.Equal(t, pending.ID, dashboard.ApprovalQueue[0].ID)

	assert.Equal(t, "up", dashboard.Health.Database)
	assert.Equal(t, "down", dashboard.Health.Redis)
	assert.Equal(t, "local", dashboard.Health.Storage)
}

func TestActivityRecordAssignsUUID(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewActivityRepository(db)

	entry := &model.ActivityLog{
		ActorID: 1,
		Action:  "course_created",
		Message: "Intro to Go created",
	}
	require.NoError(t, repo.Record(entry))
	assert.Len(t, entry.ID, 36)

	logs, err := repo.Recent(10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entry.ID, logs[0].ID)
}
