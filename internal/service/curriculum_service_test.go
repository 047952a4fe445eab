package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateModuleAppendsAtEnd(t *testing.T) {
	db := newTestDB(t)
	svc := newCurriculumService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	course := seedCourse(t, db, owner.ID, model.CourseDraft)
	seedModule(t, db, course.ID, "Basics", 1)
	seedModule(t, db, course.ID, "Advanced", 2)

	m, err := svc.CreateModule(course.ID, owner.ID, "Wrap Up", "final thoughts")
	require.NoError(t, err)
	assert.Equal(t, 3, m.DisplayOrder)
}

func TestCreateModuleValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newCurriculumService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	other := seedInstructor(t, db, "other@test.com")
	course := seedCourse(t, db, owner.ID, model.CourseDraft)

	_, err := svc.CreateModule(course.ID, owner.ID, "   ", "")
	assert.True(t, util.IsValidationError(err))

	_, err = svc.CreateModule(course.ID, other.ID, "Basics", "")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestCreateLessonDefaultPosition(t *testing.T) {
	db := newTestDB(t)
	svc := newCurriculumService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	course := seedCourse(t, db, owner.ID, model.CourseDraft)
	m := seedModule(t, db, course.ID, "Basics", 1)
	seedLesson(t, db, m.ID, "Welcome", 1)
	seedLesson(t, db, m.ID, "Setup", 2)

	lesson, err := svc.CreateLesson(course.ID, owner.ID, LessonCreate{ModuleID: m.ID, Title: "Variables"})
	require.NoError(t, err)
	assert.Equal(t, 3, lesson.Position)
	assert.Equal(t, model.LessonVideo, lesson.Type)
}

func TestCreateLessonEmptyTitleRejectedBeforeDB(t *testing.T) {
	db := newTestDB(t)
	svc := newCurriculumService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	course := seedCourse(t, db, owner.ID, model.CourseDraft)

	_, err := svc.CreateLesson(course.ID, owner.ID, LessonCreate{Title: "  "})
	assert.True(t, util.IsValidationError(err))

	var count int64
	require.NoError(t, db.Model(&model.Lesson{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateLessonWithoutModuleCreatesFirstModule(t *testing.T) {
	db := newTestDB(t)
	svc := newCurriculumService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	course := seedCourse(t, db, owner.ID, model.CourseDraft)

	lesson, err := svc.CreateLesson(course.ID, owner.ID, LessonCreate{Title: "Welcome"})
	require.NoError(t, err)

	var m model.CourseModule
	require.NoError(t, db.First(&m, lesson.ModuleID).Error)
	assert.Equal(t, "Module 1", m.Title)
	assert.Equal(t, course.ID, m.CourseID)
	assert.Equal(t, 1, lesson.Position)

	// 第二次不再新建章节
	second, err := svc.CreateLesson(course.ID, owner.ID, LessonCreate{Title: "Setup"})
	require.NoError(t, err)
	assert.Equal(t, m.ID, second.ModuleID)
	assert.Equal(t, 2, second.Position)
}

func TestCreateLessonForeignModuleRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newCurriculumService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	courseA := seedCourse(t, db, owner.ID, model.CourseDraft)
	courseB := seedCourse(t, db, owner.ID, model.CourseDraft)
	foreign := seedModule(t, db, courseB.ID, "Other", 1)

	_, err := svc.CreateLesson(courseA.ID, owner.ID, LessonCreate{ModuleID: foreign.ID, Title: "Welcome"})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestReorderLessonsValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newCurriculumService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	course := seedCourse(t, db, owner.ID, model.CourseDraft)
	m := seedModule(t, db, course.ID, "Basics", 1)
	a := seedLesson(t, db, m.ID, "A", 1)
	b := seedLesson(t, db, m.ID, "B", 2)

	cases := []struct {
		name  string
		order []LessonPosition
	}{
		{"empty list", nil},
		{"duplicate id", []LessonPosition{{ID: a.ID, Position: 1}, {ID: a.ID, Position: 2}}},
		{"duplicate position", []LessonPosition{{ID: a.ID, Position: 1}, {ID: b.ID, Position: 1}}},
		{"gap in sequence", []LessonPosition{{ID: a.ID, Position: 1}, {ID: b.ID, Position: 3}}},
		{"zero position", []LessonPosition{{ID: a.ID, Position: 0}, {ID: b.ID, Position: 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ReorderLessons(course.ID, owner.ID, tc.order)
			assert.True(t, util.IsValidationError(err))
		})
	}

	// 原顺序不受任何被拒请求影响
	var persisted model.Lesson
	require.NoError(t, db.First(&persisted, a.ID).Error)
	assert.Equal(t, 1, persisted.Position)
}

func TestReorderLessonsForeignLessonRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newCurriculumService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	course := seedCourse(t, db, owner.ID, model.CourseDraft)
	m := seedModule(t, db, course.ID, "Basics", 1)
	a := seedLesson(t, db, m.ID, "A", 1)

	otherCourse := seedCourse(t, db, owner.ID, model.CourseDraft)
	om := seedModule(t, db, otherCourse.ID, "Other", 1)
	foreign := seedLesson(t, db, om.ID, "X", 1)

	err := svc.ReorderLessons(course.ID, owner.ID, []LessonPosition{
		{ID: a.ID, Position: 1},
		{ID: foreign.ID, Position: 2},
	})
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestReorderLessonsAppliesNewOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newCurriculumService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	course := seedCourse(t, db, owner.ID, model.CourseDraft)
	m := seedModule(t, db, course.ID, "Basics", 1)
	a := seedLesson(t, db, m.ID, "A", 1)
	b := seedLesson(t, db, m.ID, "B", 2)
	c := seedLesson(t, db, m.ID, "C", 3)

	err := svc.ReorderLessons(course.ID, owner.ID, []LessonPosition{
		{ID: c.ID, Position: 1},
		{ID: a.ID, Position: 2},
		{ID: b.ID, Position: 3},
	})
	require.NoError(t, err)

	lessons, err := svc.ListLessons(course.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	assert.Equal(t, "C", lessons[0].Title)
	assert.Equal(t, "A", lessons[1].Title)
	assert.Equal(t, "B", lessons[2].Title)
}

func TestDeleteLessonRenumbersDense(t *testing.T) {
	db := newTestDB(t)
	svc := newCurriculumService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	course := seedCourse(t, db, owner.ID, model.CourseDraft)
	m := seedModule(t, db, course.ID, "Basics", 1)
	seedLesson(t, db, m.ID, "A", 1)
	b := seedLesson(t, db, m.ID, "B", 2)
	seedLesson(t, db, m.ID, "C", 3)

	require.NoError(t, svc.DeleteLesson(b.ID, owner.ID))

	var remaining []model.Lesson
	require.NoError(t, db.Where("module_id = ?", m.ID).Order("position ASC").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, "A", remaining[0].Title)
	assert.Equal(t, 1, remaining[0].Position)
	assert.Equal(t, "C", remaining[1].Title)
	assert.Equal(t, 2, remaining[1].Position)
}

func TestDeleteModuleRenumbersAndRemovesLessons(t *testing.T) {
	db := newTestDB(t)
	svc := newCurriculumService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	course := seedCourse(t, db, owner.ID, model.CourseDraft)
	m1 := seedModule(t, db, course.ID, "First", 1)
	m2 := seedModule(t, db, course.ID, "Second", 2)
	m3 := seedModule(t, db, course.ID, "Third", 3)
	seedLesson(t, db, m2.ID, "Doomed", 1)

	require.NoError(t, svc.DeleteModule(m2.ID, owner.ID))

	var modules []model.CourseModule
	require.NoError(t, db.Where("course_id = ?", course.ID).Order("display_order ASC").Find(&modules).Error)
	require.Len(t, modules, 2)
	assert.Equal(t, m1.ID, modules[0].ID)
	assert.Equal(t, 1, modules[0].DisplayOrder)
	assert.Equal(t, m3.ID, modules[1].ID)
	assert.Equal(t, 2, modules[1].DisplayOrder)

	var lessonCount int64
	require.NoError(t, db.Model(&model.Lesson{}).Where("module_id = ?", m2.ID).Count(&lessonCount).Error)
	assert.Zero(t, lessonCount)
}

func TestUpdateLessonPublishToggle(t *testing.T) {
	db := newTestDB(t)
	svc := newCurriculumService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	course := seedCourse(t, db, owner.ID, model.CourseDraft)
	m := seedModule(t, db, course.ID, "Basics", 1)
	lesson := seedLesson(t, db, m.ID, "Welcome", 1)

	published := true
	updated, err := svc.UpdateLesson(lesson.ID, owner.ID, LessonCreate{Title: "Welcome!", Type: model.LessonText}, &published)
	require.NoError(t, err)
	assert.Equal(t, "Welcome!", updated.Title)
	assert.Equal(t, model.LessonText, updated.Type)
	assert.True(t, updated.IsPublished)

	// 不带标志位的更新保留当前发布状态
	updated, err = svc.UpdateLesson(lesson.ID, owner.ID, LessonCreate{Title: "Welcome!"}, nil)
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)
}
