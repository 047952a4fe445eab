package app

import (
	"learnhub_backend/docs"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 1. 公共路由（无需登录）
	a.registerPublicRoutes(router, c, cfg)

	// 2. 学生端（通用授权接口）
	a.registerStudentRoutes(router, c, repos, cfg)

	// 3. 讲师端
	a.registerInstructorRoutes(router, c, repos, cfg)

	// 4. 管理后台
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	api := router.Group("/api")
	{
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		// 课程市场对游客开放，带token则识别登录用户
		market := api.Group("", middleware.TryAuthMiddleware(cfg))
		{
			market.GET("/courses", c.course.ListMarketplace)
			market.GET("/courses/:id", c.course.GetPublicCourse)
			market.GET("/courses/:id/reviews", c.review.ListCourseReviews)
		}
	}
}

func (a *App) registerStudentRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)

		authGroup.POST("/courses/:id/enroll", c.enrollment.Enroll)
		authGroup.GET("/enrollments", c.enrollment.ListMyEnrollments)
		authGroup.POST("/courses/:id/lessons/:lessonId/complete", c.enrollment.CompleteLesson)

		authGroup.POST("/courses/:id/reviews", c.review.CreateReview)

		calendar := authGroup.Group("/calendar")
		{
			calendar.POST("/events", c.calendar.CreateEvent)
			calendar.GET("/events", c.calendar.ListEvents)
			calendar.PUT("/events/:id", c.calendar.UpdateEvent)
			calendar.DELETE("/events/:id", c.calendar.DeleteEvent)
		}
	}
}

func (a *App) registerInstructorRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	instructor := router.Group("/api/instructor")
	instructor.Use(
		middleware.AuthMiddleware(cfg),
		middleware.RoleMiddleware(model.Instructor),
		middleware.ActivityMiddleware(repos.user),
	)
	{
		instructor.GET("/dashboard", c.dashboard.GetInstructorDashboard)

		courses := instructor.Group("/courses")
		{
			courses.POST("", c.course.CreateCourse)
			courses.GET("", c.course.ListMyCourses)
			courses.GET("/:id", c.course.GetCourse)
			courses.PUT("/:id", c.course.UpdateCourse)
			courses.DELETE("/:id", c.course.DeleteCourse)
			courses.POST("/:id/submit", c.course.SubmitForReview)
			courses.PUT("/:id/curriculum", c.course.ReplaceCurriculum)

			courses.POST("/:id/modules", c.curriculum.CreateModule)
			courses.GET("/:id/lessons", c.curriculum.ListLessons)
			courses.POST("/:id/lessons", c.curriculum.CreateLesson)
			courses.PUT("/:id/lessons/reorder", c.curriculum.ReorderLessons)

			courses.POST("/:id/cover", c.content.UploadCourseCover)
			courses.POST("/:id/lessons/:lessonId/video", c.content.UploadLessonVideo)
		}

		instructor.PUT("/modules/:moduleId", c.curriculum.UpdateModule)
		instructor.DELETE("/modules/:moduleId", c.curriculum.DeleteModule)
		instructor.PUT("/lessons/:lessonId", c.curriculum.UpdateLesson)
		instructor.DELETE("/lessons/:lessonId", c.curriculum.DeleteLesson)

		// 课程创建向导：多步会话，保存前的改动只存在于会话内
		sessions := instructor.Group("/builder/sessions")
		{
			sessions.POST("", c.builder.StartSession)
			sessions.GET("/:sessionId", c.builder.GetSession)
			sessions.PUT("/:sessionId/foundation", c.builder.SetFoundation)
			sessions.POST("/:sessionId/submit", c.builder.SubmitFoundation)
			sessions.POST("/:sessionId/lessons", c.builder.AddLesson)
			sessions.POST("/:sessionId/lessons/move", c.builder.MoveLesson)
			sessions.POST("/:sessionId/save", c.builder.Save)
			sessions.POST("/:sessionId/back", c.builder.Back)
		}

		generator := instructor.Group("/generator")
		{
			generator.POST("/outline", c.generator.GenerateOutline)
			generator.POST("/import", c.generator.ImportOutline)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/dashboard", c.admin.GetDashboard)
		admin.POST("/courses/:id/approve", c.admin.ApproveCourse)
		admin.POST("/courses/:id/reject", c.admin.RejectCourse)
	}
}
