package app

import (
	"context"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/controller"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"learnhub_backend/pkg/security"
	"learnhub_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
	tracerShutdown  func(context.Context) error
}

type repositories struct {
	user       *repository.UserRepository
	course     *repository.CourseRepository
	module     *repository.ModuleRepository
	lesson     *repository.LessonRepository
	enrollment *repository.EnrollmentRepository
	progress   *repository.ProgressRepository
	review     *repository.ReviewRepository
	calendar   *repository.CalendarRepository
	activity   *repository.ActivityRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	course     *service.CourseService
	curriculum *service.CurriculumService
	builder    *service.BuilderService
	dashboard  *service.DashboardService
	admin      *service.AdminService
	enrollment *service.EnrollmentService
	review     *service.ReviewService
	calendar   *service.CalendarService
	media      *service.MediaService
	ai         *service.AIService
	generator  *service.GeneratorService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	curriculum *controller.CurriculumController
	builder    *controller.BuilderController
	dashboard  *controller.DashboardController
	admin      *controller.AdminController
	enrollment *controller.EnrollmentController
	review     *controller.ReviewController
	calendar   *controller.CalendarController
	content    *controller.ContentController
	generator  *controller.GeneratorController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新回调入口，由配置监听器触发
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		course:     repository.NewCourseRepository(db),
		module:     repository.NewModuleRepository(db),
		lesson:     repository.NewLessonRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		progress:   repository.NewProgressRepository(db),
		review:     repository.NewReviewRepository(db),
		calendar:   repository.NewCalendarRepository(db),
		activity:   repository.NewActivityRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.course = service.NewCourseService(
		repos.course,
		repos.module,
		repos.lesson,
		repos.enrollment,
		repos.review,
		repos.activity,
		rdb,
		db,
	)
	s.curriculum = service.NewCurriculumService(repos.course, repos.module, repos.lesson, db)

	s.builder = service.NewBuilderService(s.course, s.curriculum, cfg.Builder.SessionTTL)
	go s.builder.Run()

	s.dashboard = service.NewDashboardService(repos.course, repos.enrollment, repos.review)
	s.admin = service.NewAdminService(repos.user, repos.course, repos.enrollment, repos.activity, rdb, db, cfg.Storage.Type)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.progress, repos.course, repos.lesson, repos.activity)
	s.review = service.NewReviewService(repos.review, repos.enrollment)
	s.calendar = service.NewCalendarService(repos.calendar)
	s.media = service.NewMediaService(s.storage, repos.course, repos.module, repos.lesson)
	s.ai = service.NewAIService(cfg.AI)
	s.generator = service.NewGeneratorService(s.ai, repos.activity, db)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		course:     controller.NewCourseController(s.course),
		curriculum: controller.NewCurriculumController(s.curriculum),
		builder:    controller.NewBuilderController(s.builder),
		dashboard:  controller.NewDashboardController(s.dashboard),
		admin:      controller.NewAdminController(s.admin),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		review:     controller.NewReviewController(s.review),
		calendar:   controller.NewCalendarController(s.calendar),
		content:    controller.NewContentController(s.media),
		generator:  controller.NewGeneratorController(s.generator),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("learnhub-backend", cfg.Server.Mode, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		// 进程退出时才关掉上报，由Run的退出路径调用
		app.tracerShutdown = tp.Shutdown
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 停止向导会话清理
	if a.services != nil && a.services.builder != nil {
		a.services.builder.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// 最后再关trace上报，让关闭期间的span也能刷出去
	a.closeTracing(ctx)

	log.Println("Server exiting")
}

// closeTracing 冲刷并关闭tracer provider，未启用链路追踪时为空操作
func (a *App) closeTracing(ctx context.Context) {
	if a.tracerShutdown == nil {
		return
	}
	if err := a.tracerShutdown(ctx); err != nil {
		logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
	}
}
