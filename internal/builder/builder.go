package builder

import (
	"context"
	"errors"
	"strings"
)

// 课程搭建向导的三个状态，只能单向推进，Saved 之后不再回退
type State string

const (
	StateCollectingFoundation State = "collecting_foundation"
	StateOrganizingCurriculum State = "organizing_curriculum"
	StateSaved                State = "saved"
)

// 本地校验错误：这些错误在任何网络调用之前返回
var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrCategoryRequired    = errors.New("category is required")
	ErrLessonTitleRequired = errors.New("lesson title is required")
	ErrNoLessons           = errors.New("curriculum has no lessons")
	ErrIndexOutOfRange     = errors.New("reorder index out of range")
	ErrWrongState          = errors.New("operation not allowed in current state")
)

// Foundation 第一步收集的课程基础信息草稿
type Foundation struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Level         string   `json:"level"`
	Price         float64  `json:"price"`
	Tags          []string `json:"tags,omitempty"`
	ThumbnailURL  string   `json:"thumbnailUrl,omitempty"`
	PromoVideoURL string   `json:"promoVideoUrl,omitempty"`
}

// LessonOrder 批量保存时提交的 {id, position} 对
type LessonOrder struct {
	ID       uint `json:"id"`
	Position int  `json:"position"`
}

// CourseAPI 向导依赖的后端操作，服务端校验始终是权威
type CourseAPI interface {
	CreateCourse(ctx context.Context, instructorID uint, f Foundation) (courseID uint, err error)
	ListLessons(ctx context.Context, instructorID, courseID uint) ([]LessonEntry, error)
	CreateLesson(ctx context.Context, instructorID, courseID uint, title, videoURL string, position int) (lessonID uint, err error)
	ReorderLessons(ctx context.Context, instructorID, courseID uint, order []LessonOrder) error
}

// Builder 多步课程搭建工作流。非并发安全，由持有方（会话中心）加锁。
type Builder struct {
	api          CourseAPI
	instructorID uint

	state      State
	foundation Foundation
	courseID   uint
	lessons    []LessonEntry
}

func New(api CourseAPI, instructorID uint) *Builder {
	return &Builder{
		api:          api,
		instructorID: instructorID,
		state:        StateCollectingFoundation,
	}
}

func (b *Builder) State() State { return b.state }

func (b *Builder) CourseID() uint { return b.courseID }

func (b *Builder) Foundation() Foundation { return b.foundation }

// Lessons 返回当前内存中课时列表的副本
func (b *Builder) Lessons() []LessonEntry {
	out := make([]LessonEntry, len(b.lessons))
	copy(out, b.lessons)
	return out
}

// SetFoundation 更新第一步的草稿字段，任何状态下都允许（返回第一步仅是展示层行为）
func (b *Builder) SetFoundation(f Foundation) error {
	if b.state == StateSaved {
		return ErrWrongState
	}
	b.foundation = f
	return nil
}

func validateFoundation(f Foundation) error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(f.Description) == "" {
		return ErrDescriptionRequired
	}
	if strings.TrimSpace(f.Category) == "" {
		return ErrCategoryRequired
	}
	return nil
}

// SubmitFoundation 提交第一步。本地校验失败时不发起任何网络调用；
// 服务端创建失败时停留在第一步并原样透出错误。
// 课程已创建后的重复提交直接返回已有课程ID，不会创建第二门课程。
func (b *Builder) SubmitFoundation(ctx context.Context) (uint, error) {
	if b.state == StateSaved {
		return 0, ErrWrongState
	}

	if b.courseID != 0 {
		if b.state == StateCollectingFoundation {
			b.state = StateOrganizingCurriculum
		}
		return b.courseID, nil
	}

	if err := validateFoundation(b.foundation); err != nil {
		return 0, err
	}

	courseID, err := b.api.CreateCourse(ctx, b.instructorID, b.foundation)
	if err != nil {
		return 0, err
	}

	b.courseID = courseID
	b.state = StateOrganizingCurriculum

	// 进入第二步时按序号升序加载已有课时
	lessons, err := b.api.ListLessons(ctx, b.instructorID, courseID)
	if err == nil {
		b.lessons = lessons
	}

	return courseID, nil
}

// AddLesson 空标题在本地拒绝；成功后以服务端返回的ID追加到列表末尾
func (b *Builder) AddLesson(ctx context.Context, title, videoURL string) (LessonEntry, error) {
	if b.state != StateOrganizingCurriculum {
		return LessonEntry{}, ErrWrongState
	}
	if strings.TrimSpace(title) == "" {
		return LessonEntry{}, ErrLessonTitleRequired
	}

	position := NextPosition(b.lessons)
	lessonID, err := b.api.CreateLesson(ctx, b.instructorID, b.courseID, title, videoURL, position)
	if err != nil {
		return LessonEntry{}, err
	}

	entry := LessonEntry{
		ID:       lessonID,
		Title:    title,
		VideoURL: videoURL,
		Position: position,
	}
	b.lessons = append(b.lessons, entry)
	return entry, nil
}

// MoveLesson 纯内存重排，不触发网络调用
func (b *Builder) MoveLesson(source, target int) error {
	if b.state != StateOrganizingCurriculum {
		return ErrWrongState
	}
	if source < 0 || source >= len(b.lessons) || target < 0 || target >= len(b.lessons) {
		return ErrIndexOutOfRange
	}

	b.lessons = MoveEntry(b.lessons, source, target)
	return nil
}

// Save 一次批量调用持久化当前顺序。失败时内存顺序保持不变，由调用方重试。
func (b *Builder) Save(ctx context.Context) error {
	if b.state != StateOrganizingCurriculum {
		return ErrWrongState
	}
	if len(b.lessons) == 0 {
		return ErrNoLessons
	}

	order := make([]LessonOrder, len(b.lessons))
	for i, e := range b.lessons {
		order[i] = LessonOrder{ID: e.ID, Position: e.Position}
	}

	if err := b.api.ReorderLessons(ctx, b.instructorID, b.courseID, order); err != nil {
		return err
	}

	b.state = StateSaved
	return nil
}

// Back 回到第一步的表单展示。已创建的课程ID与已添加的课时全部保留。
func (b *Builder) Back() error {
	if b.state != StateOrganizingCurriculum {
		return ErrWrongState
	}
	b.state = StateCollectingFoundation
	return nil
}
