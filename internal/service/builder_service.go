package service

import (
	"context"
	"learnhub_backend/internal/builder"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// courseAPI 把课程/大纲服务适配为向导依赖的后端接口
type courseAPI struct {
	course     *CourseService
	curriculum *CurriculumService
}

func (a *courseAPI) CreateCourse(ctx context.Context, instructorID uint, f builder.Foundation) (uint, error) {
	level := model.CourseLevel(f.Level)
	if level == "" {
		level = model.LevelBeginner
	}

	course, err := a.course.CreateCourse(instructorID, CourseInput{
		Title:         f.Title,
		Description:   f.Description,
		Category:      f.Category,
		Level:         level,
		Tags:          f.Tags,
		Price:         f.Price,
		ThumbnailURL:  f.ThumbnailURL,
		PromoVideoURL: f.PromoVideoURL,
	})
	if err != nil {
		return 0, err
	}
	return course.ID, nil
}

func (a *courseAPI) ListLessons(ctx context.Context, instructorID, courseID uint) ([]builder.LessonEntry, error) {
	lessons, err := a.curriculum.ListLessons(courseID, instructorID)
	if err != nil {
		return nil, err
	}

	entries := make([]builder.LessonEntry, len(lessons))
	for i, l := range lessons {
		entries[i] = builder.LessonEntry{
			ID:       l.ID,
			Title:    l.Title,
			VideoURL: l.VideoURL,
			Position: l.Position,
		}
	}
	return entries, nil
}

func (a *courseAPI) CreateLesson(ctx context.Context, instructorID, courseID uint, title, videoURL string, position int) (uint, error) {
	lesson, err := a.curriculum.CreateLesson(courseID, instructorID, LessonCreate{
		Title:    title,
		VideoURL: videoURL,
		Position: position,
	})
	if err != nil {
		return 0, err
	}
	return lesson.ID, nil
}

func (a *courseAPI) ReorderLessons(ctx context.Context, instructorID, courseID uint, order []builder.LessonOrder) error {
	positions := make([]LessonPosition, len(order))
	for i, o := range order {
		positions[i] = LessonPosition{ID: o.ID, Position: o.Position}
	}
	return a.curriculum.ReorderLessons(courseID, instructorID, positions)
}

type builderSession struct {
	mu           sync.Mutex
	builder      *builder.Builder
	instructorID uint
	lastActive   time.Time
}

// BuilderService 课程搭建向导的会话中心。会话常驻内存，按空闲时间过期清理。
type BuilderService struct {
	api      *courseAPI
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*builderSession
	stop     chan struct{}
}

func NewBuilderService(course *CourseService, curriculum *CurriculumService, ttl time.Duration) *BuilderService {
	return &BuilderService{
		api:      &courseAPI{course: course, curriculum: curriculum},
		ttl:      ttl,
		sessions: make(map[string]*builderSession),
		stop:     make(chan struct{}),
	}
}

// Run 定期清理空闲会话，由 App 以 goroutine 启动
func (s *BuilderService) Run() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *BuilderService) Stop() {
	close(s.stop)
}

func (s *BuilderService) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if time.Since(session.lastActive) > s.ttl {
			delete(s.sessions, id)
			logger.Log.Debug("builder session expired", zap.String("sessionId", id))
		}
	}
}

// SessionView 控制器返回的会话快照
type SessionView struct {
	SessionID  string                `json:"sessionId"`
	State      builder.State         `json:"state"`
	CourseID   uint                  `json:"courseId,omitempty"`
	Foundation builder.Foundation    `json:"foundation"`
	Lessons    []builder.LessonEntry `json:"lessons"`
}

// StartSession 创建新的向导会话，初始处于第一步
func (s *BuilderService) StartSession(instructorID uint) *SessionView {
	session := &builderSession{
		builder:      builder.New(s.api, instructorID),
		instructorID: instructorID,
		lastActive:   time.Now(),
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return snapshot(id, session)
}

// 会话不存在与会话属于他人都返回 ErrSessionNotFound
func (s *BuilderService) getSession(sessionID string, instructorID uint) (*builderSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || session.instructorID != instructorID {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

func snapshot(sessionID string, session *builderSession) *SessionView {
	return &SessionView{
		SessionID:  sessionID,
		State:      session.builder.State(),
		CourseID:   session.builder.CourseID(),
		Foundation: session.builder.Foundation(),
		Lessons:    session.builder.Lessons(),
	}
}

func (s *BuilderService) withSession(sessionID string, instructorID uint, fn func(*builder.Builder) error) (*SessionView, error) {
	session, err := s.getSession(sessionID, instructorID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.lastActive = time.Now()

	if err := fn(session.builder); err != nil {
		return nil, err
	}
	return snapshot(sessionID, session), nil
}

func (s *BuilderService) GetSession(sessionID string, instructorID uint) (*SessionView, error) {
	return s.withSession(sessionID, instructorID, func(b *builder.Builder) error { return nil })
}

func (s *BuilderService) SetFoundation(sessionID string, instructorID uint, f builder.Foundation) (*SessionView, error) {
	return s.withSession(sessionID, instructorID, func(b *builder.Builder) error {
		return b.SetFoundation(f)
	})
}

func (s *BuilderService) SubmitFoundation(ctx context.Context, sessionID string, instructorID uint) (*SessionView, error) {
	return s.withSession(sessionID, instructorID, func(b *builder.Builder) error {
		_, err := b.SubmitFoundation(ctx)
		return err
	})
}

func (s *BuilderService) AddLesson(ctx context.Context, sessionID string, instructorID uint, title, videoURL string) (*SessionView, error) {
	return s.withSession(sessionID, instructorID, func(b *builder.Builder) error {
		_, err := b.AddLesson(ctx, title, videoURL)
		return err
	})
}

func (s *BuilderService) MoveLesson(sessionID string, instructorID uint, source, target int) (*SessionView, error) {
	return s.withSession(sessionID, instructorID, func(b *builder.Builder) error {
		return b.MoveLesson(source, target)
	})
}

func (s *BuilderService) Save(ctx context.Context, sessionID string, instructorID uint) (*SessionView, error) {
	return s.withSession(sessionID, instructorID, func(b *builder.Builder) error {
		return b.Save(ctx)
	})
}

func (s *BuilderService) Back(sessionID string, instructorID uint) (*SessionView, error) {
	return s.withSession(sessionID, instructorID, func(b *builder.Builder) error {
		return b.Back()
	})
}
