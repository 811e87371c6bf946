package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"school_reports_backend/internal/client"
	"school_reports_backend/internal/config"
	"school_reports_backend/internal/controller"
	"school_reports_backend/internal/document"
	"school_reports_backend/internal/repository"
	"school_reports_backend/internal/service"
	"school_reports_backend/internal/util"
	"school_reports_backend/pkg/configwatcher"
	"school_reports_backend/pkg/database"
	"school_reports_backend/pkg/logger"
	"school_reports_backend/pkg/monitoring"
	"school_reports_backend/pkg/security"
	"school_reports_backend/pkg/timeouts"
	"school_reports_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	source  repository.Source
	pinger  controller.Pinger
	api     *client.SchoolAPI
	archive *repository.ArchiveRepository
}

type services struct {
	storage    *service.StorageService
	templates  *service.TemplateService
	archiver   *service.Archiver
	layouts    *document.Registry
	report     *service.ReportService
	tardy      *service.TardyService
	accident   *service.AccidentService
	enrollment *service.EnrollmentService
}

type controllers struct {
	report     *controller.ReportController
	tardy      *controller.TardyController
	accident   *controller.AccidentController
	grading    *controller.GradingController
	enrollment *controller.EnrollmentController
	template   *controller.TemplateController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// applyConfig runs the reload callbacks and keeps the new config.
func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	cfg.Migrate = a.Config.Migrate
	a.Config = cfg
}

func timeoutsConfig(cfg *config.Config) timeouts.Config {
	return timeouts.Config{
		Ping:   cfg.Timeouts.Ping,
		Short:  cfg.Timeouts.Short,
		Medium: cfg.Timeouts.Medium,
		Long:   cfg.Timeouts.Long,
	}
}

// initRepositories picks the record source. Redis, when connected, caches
// student and roster lookups in front of it.
func (a *App) initRepositories(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *repositories {
	repos := &repositories{}

	switch cfg.Source.Type {
	case util.SourceDatabase:
		replica := repository.NewSchoolRepository(db)
		repos.source = replica
		repos.pinger = replica
	default:
		repos.api = client.NewSchoolAPI(cfg.Upstream)
		repos.source = repos.api
		repos.pinger = repos.api
	}

	if rdb != nil {
		repos.source = repository.NewCachedSource(repos.source, rdb, cfg.Redis.CacheTTL)
	}
	if db != nil {
		repos.archive = repository.NewArchiveRepository(db)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	s := &services{}

	layouts, err := document.NewRegistry(cfg.Report.LayoutDir)
	if err != nil {
		return nil, fmt.Errorf("load layouts: %w", err)
	}
	s.layouts = layouts

	s.storage = service.NewStorageService(cfg)
	s.templates = service.NewTemplateService(s.storage, cfg.Report.TemplatePrefix)
	if cfg.Archive.Enabled {
		s.archiver = service.NewArchiver(s.storage, repos.archive, cfg.Archive.Prefix)
	}

	s.report = service.NewReportService(repos.source, s.layouts, s.templates, s.archiver, cfg.Report.HeadTeacher)
	s.tardy = service.NewTardyService(repos.source, cfg.Upstream.Concurrency)
	s.accident = service.NewAccidentService(repos.source, s.layouts, s.templates, s.archiver)
	s.enrollment = service.NewEnrollmentService(repos.source)

	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		report:     controller.NewReportController(s.report),
		tardy:      controller.NewTardyController(s.tardy),
		accident:   controller.NewAccidentController(s.accident),
		grading:    controller.NewGradingController(),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		template:   controller.NewTemplateController(s.templates),
		health:     controller.NewHealthController(repos.pinger, a.DB, a.Redis),
	}
}

// registerReloads wires the settings that can change without a restart.
func (a *App) registerReloads(repos *repositories, s *services) {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		timeouts.Configure(timeoutsConfig(cfg))
	})
	if repos.api != nil {
		a.RegisterConfigCallback(func(cfg *config.Config) {
			repos.api.Reconfigure(cfg.Upstream)
		})
	}
	a.RegisterConfigCallback(func(cfg *config.Config) {
		s.tardy.SetConcurrency(cfg.Upstream.Concurrency)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		if err := s.layouts.Reload(cfg.Report.LayoutDir); err != nil {
			logger.Log.Error("layout reload failed, keeping previous layouts", zap.Error(err))
		}
	})
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// needsDB reports whether a database connection is required.
func needsDB(cfg *config.Config) bool {
	return cfg.Source.Type == util.SourceDatabase || cfg.Archive.Enabled || cfg.Migrate
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully", zap.String("source", cfg.Source.Type))

	gin.SetMode(cfg.Server.Mode)
	timeouts.Configure(timeoutsConfig(cfg))

	app := &App{Config: cfg}

	if needsDB(cfg) {
		db, err := database.InitDB(cfg)
		if err != nil {
			logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		}
		app.DB = db
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			// the cache is optional
			logger.Log.Warn("Redis unavailable, lookups are not cached", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	app.build()
	return app
}

// build wires repositories, services, controllers and routes on the
// connections already set on a.
func (a *App) build() {
	cfg := a.Config

	repos := a.initRepositories(cfg, a.DB, a.Redis)
	services, err := a.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	a.services = services
	controllers := a.initControllers(services, repos)
	a.registerReloads(repos, services)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("school-reports", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			a.tracer = tp
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	a.Router = router

	a.setupMiddlewares(router, cfg)
	a.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal && cfg.Archive.Enabled {
		router.Static("/uploads/"+cfg.Archive.Prefix, filepath.Join(cfg.Storage.LocalPath, cfg.Archive.Prefix))
	}
}

// WatchConfig reloads configDir/config.yaml on change until ctx is done.
func (a *App) WatchConfig(ctx context.Context, configDir string) {
	go func() {
		if err := configwatcher.WatchConfig(ctx, filepath.Join(configDir, "config.yaml"), a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close(ctx)

	logger.Log.Info("Server exiting")
}

// Close flushes traces and releases connections.
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
