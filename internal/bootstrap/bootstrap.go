package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/capstone/internal/app/controllers"
	appMigrations "github.com/yigit/capstone/internal/app/migrations"
	appRepos "github.com/yigit/capstone/internal/app/repositories"
	appRoutes "github.com/yigit/capstone/internal/app/routes"
	appServices "github.com/yigit/capstone/internal/app/services"
	"github.com/yigit/capstone/internal/config"
	"github.com/yigit/capstone/internal/db"
	appMiddleware "github.com/yigit/capstone/internal/middleware"
	pkgAuth "github.com/yigit/capstone/internal/pkg/auth"
	"github.com/yigit/capstone/internal/pkg/filestorage"
	"github.com/yigit/capstone/internal/pkg/logger"
	"github.com/yigit/capstone/internal/pkg/metrics"
	"github.com/yigit/capstone/internal/pkg/validation"
	"github.com/yigit/capstone/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Metrics        *metrics.Metrics
	Registry       *prometheus.Registry
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath, ".env")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := appMigrations.NewMigrator(dbPool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	tokenExp, err := cfg.TokenExpiration()
	if err != nil {
		return nil, fmt.Errorf("invalid token expiration: %w", err)
	}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    tokenExp,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = metrics.New(deps.Registry)

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, appServices.ProjectLimits{
		MaxStudents:         cfg.Project.MaxStudents,
		MaxProjectsPerGuide: cfg.Project.MaxProjectsPerGuide,
	}, deps.Metrics)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(seedCtx, deps.Services.AdminService, cfg, lgr); err != nil {
		// Startup continues; the admin can be created later through the API
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(deps.Services.AuthService),
		Student: appControllers.NewStudentController(deps.Services.StudentService),
		Staff: appControllers.NewStaffController(
			deps.Services.StaffService,
			filestorage.NewImageReader(cfg.Upload.MaxProfileImageBytes),
		),
		Admin:   appControllers.NewAdminController(deps.Services.AdminService),
		Project: appControllers.NewProjectController(deps.Services.ProjectService),
		Review:  appControllers.NewReviewController(deps.Services.ReviewService),
		Health:  appControllers.NewHealthController(dbPool),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterBindings(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxProfileImageBytes
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(),
		appMiddleware.Metrics(deps.Metrics),
	)

	appRoutes.SetupRouter(router,
		deps.Controllers,
		deps.AuthMiddleware,
		promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}),
	)

	return router, nil
}
