package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/dparedes/leagueadmin/internal/app/controllers"
	appMigrations "github.com/dparedes/leagueadmin/internal/app/migrations"
	appRepos "github.com/dparedes/leagueadmin/internal/app/repositories"
	appRoutes "github.com/dparedes/leagueadmin/internal/app/routes"
	appServices "github.com/dparedes/leagueadmin/internal/app/services"
	"github.com/dparedes/leagueadmin/internal/config"
	"github.com/dparedes/leagueadmin/internal/db"
	appMiddleware "github.com/dparedes/leagueadmin/internal/middleware"
	pkgAuth "github.com/dparedes/leagueadmin/internal/pkg/auth"
	"github.com/dparedes/leagueadmin/internal/pkg/email"
	"github.com/dparedes/leagueadmin/internal/pkg/fetch"
	"github.com/dparedes/leagueadmin/internal/pkg/filestorage"
	"github.com/dparedes/leagueadmin/internal/pkg/logger"
	"github.com/dparedes/leagueadmin/internal/seed"
)

// importFetchTimeout bounds each remote image download during bulk import.
const importFetchTimeout = 15 * time.Second

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	StudentService      appServices.StudentService
	ShareService        appServices.ShareService
	MotionService       appServices.MotionService
	UserService         appServices.UserService
	ImportService       appServices.ImportService
	NotificationService appServices.NotificationService
	ExportService       appServices.ExportService

	AuthController    *appControllers.AuthController
	StudentController *appControllers.StudentController
	ShareController   *appControllers.ShareController
	MotionController  *appControllers.MotionController
	UserController    *appControllers.UserController
	EmailController   *appControllers.EmailController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the fixed admin.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	baseURL := "http://localhost:" + cfg.Server.Port
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  parseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: parseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	mailSender := email.NewSendgridSender(email.Config{
		APIKey:    cfg.Mail.SendgridKey,
		FromName:  cfg.Mail.FromName,
		FromEmail: cfg.Mail.FromEmail,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.Repos.TokenRepository, deps.JWTService)
	deps.ShareService = appServices.NewShareService(deps.Repos.ShareRepository, deps.Repos.StudentRepository)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.FileStorage)
	deps.MotionService = appServices.NewMotionService(deps.Repos.MotionRepository)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)
	deps.ImportService = appServices.NewImportService(
		deps.Repos.StudentRepository,
		deps.ShareService,
		fetch.NewFetcher(importFetchTimeout),
		deps.FileStorage,
	)
	deps.NotificationService = appServices.NewNotificationService(mailSender, deps.Repos.StudentRepository)
	deps.ExportService = appServices.NewExportService(deps.StudentService, deps.MotionService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.JWTService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.ImportService, deps.ExportService)
	deps.ShareController = appControllers.NewShareController(deps.ShareService)
	deps.MotionController = appControllers.NewMotionController(deps.MotionService, deps.ExportService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.EmailController = appControllers.NewEmailController(deps.NotificationService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.ShareController,
		deps.MotionController,
		deps.UserController,
		deps.EmailController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

// parseDuration parses a duration string, falling back to a default when
// the value is empty or malformed. Config validation already rejects
// malformed values, so the fallback only covers programmatic callers.
func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
