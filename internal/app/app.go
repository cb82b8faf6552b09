package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/controller"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/pkg/configwatcher"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"learnhub_backend/pkg/security"
	"learnhub_backend/pkg/tracing"

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
}

type repositories struct {
	user       *repository.UserRepository
	org        *repository.OrganizationRepository
	course     *repository.CourseRepository
	progress   *repository.ProgressRepository
	enrollment *repository.EnrollmentRepository
	order      *repository.OrderRepository
	coupon     *repository.CouponRepository
	quizResult *repository.QuizResultRepository
}

type services struct {
	auth     *service.AuthService
	user     *service.UserService
	storage  *service.StorageService
	org      *service.OrganizationService
	course   *service.CourseService
	player   *service.PlayerService
	checkout *service.CheckoutService
}

type controllers struct {
	auth     *controller.AuthController
	org      *controller.OrganizationController
	course   *controller.CourseController
	player   *controller.PlayerController
	checkout *controller.CheckoutController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		org:        repository.NewOrganizationRepository(db),
		course:     repository.NewCourseRepository(db),
		progress:   repository.NewProgressRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		order:      repository.NewOrderRepository(db),
		coupon:     repository.NewCouponRepository(db),
		quizResult: repository.NewQuizResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.org = service.NewOrganizationService(repos.org, repos.user, s.storage)
	s.course = service.NewCourseService(repos.course, s.storage, rdb)
	s.player = service.NewPlayerService(s.course, repos.course, repos.enrollment, repos.progress, repos.quizResult, db)
	s.checkout = service.NewCheckoutService(repos.course, repos.coupon, repos.order, repos.enrollment, cfg, db)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, s.user),
		org:      controller.NewOrganizationController(s.org),
		course:   controller.NewCourseController(s.course),
		player:   controller.NewPlayerController(s.player),
		checkout: controller.NewCheckoutController(s.checkout),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			if err := s.course.ProcessScheduledPublishes(); err != nil {
				logger.Log.Error("scheduled publish error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learnhub", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		app.Config = newCfg
		for _, cb := range app.configCallbacks {
			cb(newCfg)
		}
		logger.Log.Info("configuration reloaded")
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
