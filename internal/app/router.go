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

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerLearnerRoutes(authGroup, c)
		a.registerAuthoringRoutes(authGroup, c)
	}

	a.registerOrganizationRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Catalog browsing is open to guests.
		public.GET("/courses", c.course.List)
		public.GET("/courses/:courseId", middleware.TryAuthMiddleware(a.Config), c.course.Get)
	}
}

func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.auth.UpdateProfile)

	// Course player
	player := rg.Group("/player/:courseId")
	{
		player.GET("", c.player.GetState)
		player.GET("/progress", c.player.GetProgress)
		player.GET("/quiz-results", c.player.QuizHistory)
		player.POST("/select", c.player.SelectItem)
		player.POST("/lessons/:lessonId/complete", c.player.CompleteLesson)
		player.POST("/quizzes/:quizId/submit", c.player.SubmitQuiz)
	}

	// Checkout and enrollments
	rg.POST("/checkout/quote", c.checkout.Quote)
	rg.POST("/checkout/orders", c.checkout.CreateOrder)
	rg.GET("/checkout/orders", c.checkout.MyOrders)
	rg.POST("/checkout/orders/:orderId/confirm", c.checkout.ConfirmOrder)
	rg.POST("/checkout/orders/:orderId/cancel", c.checkout.CancelOrder)
	rg.POST("/courses/:courseId/enroll", c.checkout.EnrollFree)
	rg.GET("/enrollments", c.checkout.MyEnrollments)
}

func (a *App) registerAuthoringRoutes(rg *gin.RouterGroup, c *controllers) {
	authoring := rg.Group("/authoring")
	authoring.Use(middleware.RoleMiddleware(model.Author))
	{
		authoring.POST("/courses", c.course.Create)
		authoring.PUT("/courses/:courseId", c.course.Update)
		authoring.POST("/courses/:courseId/publish", c.course.Publish)
		authoring.POST("/courses/:courseId/lessons", c.course.AddLesson)
		authoring.POST("/courses/:courseId/lessons/:lessonId/video", c.course.UploadLessonVideo)
		authoring.POST("/courses/:courseId/quizzes", c.course.AddQuiz)
		authoring.DELETE("/courses/:courseId/curriculum/:entryId", c.course.RemoveEntry)
		authoring.PUT("/courses/:courseId/curriculum/reorder", c.course.Reorder)
	}
}

func (a *App) registerOrganizationRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	orgs := router.Group("/api/organizations")
	{
		orgs.GET("", c.org.List)
		orgs.GET("/:id", c.org.Get)

		authorized := orgs.Group("/")
		authorized.Use(middleware.AuthMiddleware(cfg))
		{
			authorized.POST("", middleware.RoleMiddleware(model.Author), c.org.Create)
			authorized.PUT("/:id", middleware.RoleMiddleware(model.Author), c.org.Update)
			authorized.POST("/:id/logo", middleware.RoleMiddleware(model.Author), c.org.UploadLogo)
			authorized.DELETE("/:id", middleware.RoleMiddleware(model.Admin), c.org.Delete)
		}
	}
}
