package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollPublishedOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	student := seedStudent(t, db, "s@test.com")

	draft := seedCourse(t, db, owner.ID, model.CourseDraft)
	_, err := svc.Enroll(student.ID, draft.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotPublished)

	_, err = svc.Enroll(student.ID, 9999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	published := seedCourse(t, db, owner.ID, model.CoursePublished)
	enrollment, err := svc.Enroll(student.ID, published.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, enrollment.UserID)
	assert.Zero(t, enrollment.Progress)
}

func TestEnrollIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	student := seedStudent(t, db, "s@test.com")
	course := seedCourse(t, db, owner.ID, model.CoursePublished)

	first, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	second, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCompleteLessonRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	student := seedStudent(t, db, "s@test.com")
	course := seedCourse(t, db, owner.ID, model.CoursePublished)
	m := seedModule(t, db, course.ID, "Basics", 1)
	lesson := seedLesson(t, db, m.ID, "Welcome", 1)

	_, err := svc.CompleteLesson(student.ID, course.ID, lesson.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestCompleteLessonForeignLessonRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	student := seedStudent(t, db, "s@test.com")
	course := seedCourse(t, db, owner.ID, model.CoursePublished)
	seedModule(t, db, course.ID, "Basics", 1)

	other := seedCourse(t, db, owner.ID, model.CoursePublished)
	om := seedModule(t, db, other.ID, "Other", 1)
	foreign := seedLesson(t, db, om.ID, "X", 1)

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = svc.CompleteLesson(student.ID, course.ID, foreign.ID)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestCompleteLessonUpdatesProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	student := seedStudent(t, db, "s@test.com")
	course := seedCourse(t, db, owner.ID, model.CoursePublished)
	m := seedModule(t, db, course.ID, "Basics", 1)
	first := seedLesson(t, db, m.ID, "Welcome", 1)
	second := seedLesson(t, db, m.ID, "Setup", 2)

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	enrollment, err := svc.CompleteLesson(student.ID, course.ID, first.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, enrollment.Progress, 0.001)
	assert.Nil(t, enrollment.CompletedAt)

	enrollment, err = svc.CompleteLesson(student.ID, course.ID, second.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, enrollment.Progress, 0.001)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	student := seedStudent(t, db, "s@test.com")
	course := seedCourse(t, db, owner.ID, model.CoursePublished)
	m := seedModule(t, db, course.ID, "Basics", 1)
	lesson := seedLesson(t, db, m.ID, "Welcome", 1)
	seedLesson(t, db, m.ID, "Setup", 2)

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	// 重复标记既不报错也不重复计数
	for i := 0; i < 3; i++ {
		enrollment, err := svc.CompleteLesson(student.ID, course.ID, lesson.ID)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, enrollment.Progress, 0.001)
	}

	var count int64
	require.NoError(t, db.Model(&model.LessonProgress{}).Where("lesson_id = ?", lesson.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
