package service

import (
	"context"
	"learnhub_backend/internal/builder"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilderService(t *testing.T) (*BuilderService, uint) {
	t.Helper()
	db := newTestDB(t)
	instructor := seedInstructor(t, db, "owner@test.com")
	svc := NewBuilderService(newCourseService(db), newCurriculumService(db), time.Hour)
	return svc, instructor.ID
}

func builderFoundation() builder.Foundation {
	return builder.Foundation{
		Title:       "Intro to Go",
		Description: "A course about Go",
		Category:    "programming",
		Level:       "beginner",
		Price:       49.9,
	}
}

func TestBuilderSessionOwnership(t *testing.T) {
	svc, instructorID := newBuilderService(t)
	view := svc.StartSession(instructorID)
	require.NotEmpty(t, view.SessionID)
	assert.Equal(t, builder.StateCollectingFoundation, view.State)

	// 他人的会话与不存在的会话返回同样的错误
	_, err := svc.GetSession(view.SessionID, instructorID+1)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	_, err = svc.GetSession("missing-session", instructorID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	got, err := svc.GetSession(view.SessionID, instructorID)
	require.NoError(t, err)
	assert.Equal(t, view.SessionID, got.SessionID)
}

func TestBuilderWizardPersistsThroughService(t *testing.T) {
	db := newTestDB(t)
	instructor := seedInstructor(t, db, "owner@test.com")
	svc := NewBuilderService(newCourseService(db), newCurriculumService(db), time.Hour)
	ctx := context.Background()

	view := svc.StartSession(instructor.ID)

	_, err := svc.SetFoundation(view.SessionID, instructor.ID, builderFoundation())
	require.NoError(t, err)

	view, err = svc.SubmitFoundation(ctx, view.SessionID, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, builder.StateOrganizingCurriculum, view.State)
	require.NotZero(t, view.CourseID)

	var course model.Course
	require.NoError(t, db.First(&course, view.CourseID).Error)
	assert.Equal(t, model.CourseDraft, course.Status)
	assert.Equal(t, "Intro to Go", course.Title)

	view, err = svc.AddLesson(ctx, view.SessionID, instructor.ID, "Welcome", "")
	require.NoError(t, err)
	view, err = svc.AddLesson(ctx, view.SessionID, instructor.ID, "Setup", "")
	require.NoError(t, err)
	require.Len(t, view.Lessons, 2)

	// 把第二课拖到第一位并保存
	view, err = svc.MoveLesson(view.SessionID, instructor.ID, 1, 0)
	require.NoError(t, err)
	view, err = svc.Save(ctx, view.SessionID, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, builder.StateSaved, view.State)

	var lessons []model.Lesson
	require.NoError(t, db.Order("position ASC").Find(&lessons).Error)
	require.Len(t, lessons, 2)
	assert.Equal(t, "Setup", lessons[0].Title)
	assert.Equal(t, 1, lessons[0].Position)
	assert.Equal(t, "Welcome", lessons[1].Title)
	assert.Equal(t, 2, lessons[1].Position)
}

func TestBuilderSessionExpiry(t *testing.T) {
	db := newTestDB(t)
	instructor := seedInstructor(t, db, "owner@test.com")
	svc := NewBuilderService(newCourseService(db), newCurriculumService(db), time.Nanosecond)

	view := svc.StartSession(instructor.ID)
	time.Sleep(time.Millisecond)
	svc.sweep()

	_, err := svc.GetSession(view.SessionID, instructor.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestBuilderFoundationValidationSurfacedAsBuilderError(t *testing.T) {
	svc, instructorID := newBuilderService(t)
	view := svc.StartSession(instructorID)

	f := builderFoundation()
	f.Title = "  "
	_, err := svc.SetFoundation(view.SessionID, instructorID, f)
	require.NoError(t, err)

	_, err = svc.SubmitFoundation(context.Background(), view.SessionID, instructorID)
	assert.ErrorIs(t, err, builder.ErrTitleRequired)

	got, err := svc.GetSession(view.SessionID, instructorID)
	require.NoError(t, err)
	assert.Equal(t, builder.StateCollectingFoundation, got.State)
}
