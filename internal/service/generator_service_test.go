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

func newGeneratorService(db *gorm.DB) *GeneratorService {
	return NewGeneratorService(nil, repository.NewActivityRepository(db), db)
}

func sampleOutline() *CourseOutline {
	return &CourseOutline{
		Title:         "Go 入门",
		Description:   "从零开始学 Go",
		Category:      "programming",
		Level:         "beginner",
		Objectives:    []string{"掌握基础语法"},
		Prerequisites: []string{"会用命令行"},
		Modules: []OutlineModule{
			{Title: "基础", Lessons: []OutlineLesson{
				{Title: "环境搭建", Type: "video"},
				{Title: "变量与类型", Type: "text", Content: "……"},
			}},
			{Title: "进阶", Lessons: []OutlineLesson{
				{Title: "并发入门", Type: "video"},
			}},
		},
	}
}

func TestImportOutlineCreatesDraftCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newGeneratorService(db)
	instructor := seedInstructor(t, db, "owner@test.com")

	course, err := svc.ImportOutline(context.Background(), instructor.ID, sampleOutline())
	require.NoError(t, err)
	assert.Equal(t, model.CourseDraft, course.Status)
	assert.Equal(t, instructor.ID, course.InstructorID)
	assert.Contains(t, course.Description, "学习目标")
	assert.Contains(t, course.Description, "前置要求")

	var modules []model.CourseModule
	require.NoError(t, db.Where("course_id = ?", course.ID).Order("display_order ASC").Find(&modules).Error)
	require.Len(t, modules, 2)
	assert.Equal(t, "基础", modules[0].Title)
	assert.Equal(t, 1, modules[0].DisplayOrder)

	var lessons []model.Lesson
	require.NoError(t, db.Where("module_id = ?", modules[0].ID).Order("position ASC").Find(&lessons).Error)
	require.Len(t, lessons, 2)
	assert.Equal(t, model.LessonVideo, lessons[0].Type)
	assert.Equal(t, model.LessonText, lessons[1].Type)
	assert.Equal(t, 1, lessons[0].Position)
	assert.Equal(t, 2, lessons[1].Position)

	var logCount int64
	require.NoError(t, db.Model(&model.ActivityLog{}).
		Where("action = ?", "course_generated").Count(&logCount).Error)
	assert.Equal(t, int64(1), logCount)
}

func TestImportOutlineCoercesInvalidFields(t *testing.T) {
	db := newTestDB(t)
	svc := newGeneratorService(db)
	instructor := seedInstructor(t, db, "owner@test.com")

	outline := sampleOutline()
	outline.Level = "expert"
	outline.Category = "  "
	outline.Modules[0].Title = ""
	outline.Modules[0].Lessons[0].Title = ""
	outline.Modules[0].Lessons[0].Type = "podcast"

	course, err := svc.ImportOutline(context.Background(), instructor.ID, outline)
	require.NoError(t, err)
	assert.Equal(t, model.LevelBeginner, course.Level)
	assert.Equal(t, "general", course.Category)

	var m model.CourseModule
	require.NoError(t, db.Where("course_id = ? AND display_order = 1", course.ID).First(&m).Error)
	assert.Equal(t, "Module 1", m.Title)

	var lesson model.Lesson
	require.NoError(t, db.Where("module_id = ? AND position = 1", m.ID).First(&lesson).Error)
	assert.Equal(t, "Lesson 1", lesson.Title)
	assert.Equal(t, model.LessonText, lesson.Type)
}

func TestImportOutlineValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newGeneratorService(db)
	instructor := seedInstructor(t, db, "owner@test.com")

	outline := sampleOutline()
	outline.Title = "  "
	_, err := svc.ImportOutline(context.Background(), instructor.ID, outline)
	assert.True(t, util.IsValidationError(err))

	outline = sampleOutline()
	outline.Modules = nil
	_, err = svc.ImportOutline(context.Background(), instructor.ID, outline)
	assert.True(t, util.IsValidationError(err))

	var count int64
	require.NoError(t, db.Model(&model.Course{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGenerateOutlineEmptyContentRejected(t *testing.T) {
	svc := newGeneratorService(newTestDB(t))
	_, err := svc.GenerateOutline(context.Background(), GenerateRequest{Content: "   "})
	assert.True(t, util.IsValidationError(err))
}
