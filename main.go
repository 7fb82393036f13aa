package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/config"
	"github.com/ideahub-inc/ideahub-engine/pkg/database"
	"github.com/ideahub-inc/ideahub-engine/pkg/handlers"
	"github.com/ideahub-inc/ideahub-engine/pkg/middleware"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
	"github.com/ideahub-inc/ideahub-engine/pkg/repositories"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
	"github.com/ideahub-inc/ideahub-engine/pkg/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("database", cfg.Database.Database),
		zap.String("host", cfg.Database.Host),
		zap.String("upload_dir", cfg.Uploads.Dir))

	// Run migrations over database/sql; the serving path uses pgx pools.
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	files, err := storage.NewFileStore(cfg.Uploads.Dir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize file store", zap.Error(err))
	}

	// Repositories
	ideaRepo := repositories.NewIdeaRepository(db)
	evidenceRepo := repositories.NewEvidenceRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	deploymentRepo := repositories.NewDeploymentRepository(db)
	environmentRepo := repositories.NewEnvironmentRepository(db)
	trackerRepo := repositories.NewTrackerRepository(db)
	likeRepo := repositories.NewLikeRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	userRepo := repositories.NewUserRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	settingRepo := repositories.NewIntegrationSettingRepository(db)
	vaultRepo := repositories.NewVaultSettingsRepository(db)
	endpointRepo := repositories.NewEndpointRepository(db)
	testLogRepo := repositories.NewTestLogRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	themeRepo := repositories.NewUserThemeRepository(db)

	// Services
	ideaService := services.NewIdeaService(ideaRepo, employeeRepo, logger)
	evidenceService := services.NewEvidenceService(evidenceRepo, projectRepo, userRepo, ideaRepo, files, logger)
	employeeService := services.NewEmployeeService(employeeRepo, logger)
	deploymentService := services.NewDeploymentService(deploymentRepo, employeeRepo, logger)
	environmentService := services.NewEnvironmentService(environmentRepo, employeeRepo, logger)
	trackerService := services.NewTrackerService(trackerRepo, employeeRepo, logger)
	likeService := services.NewLikeService(likeRepo, ideaRepo, userRepo, logger)
	projectService := services.NewProjectService(projectRepo, logger)
	userService := services.NewUserService(userRepo, logger)
	tagService := services.NewTagService(tagRepo, logger)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, userRepo, logger)
	settingService := services.NewIntegrationSettingService(settingRepo, userRepo, logger)
	vaultService := services.NewVaultSettingsService(vaultRepo, logger)
	endpointService := services.NewEndpointService(endpointRepo, employeeRepo, logger)
	testLogService := services.NewTestLogService(testLogRepo, endpointRepo, logger)
	roleService := services.NewRoleService(roleRepo, logger)
	themeService := services.NewUserThemeService(themeRepo, userRepo, logger)

	limits := pagination.Limits{
		DefaultSize: cfg.Pagination.DefaultSize,
		MaxSize:     cfg.Pagination.MaxSize,
	}

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewIdeaHandler(ideaService, limits, logger).RegisterRoutes(mux)
	handlers.NewEvidenceHandler(evidenceService, limits, logger).RegisterRoutes(mux)
	handlers.NewEmployeeHandler(employeeService, limits, logger).RegisterRoutes(mux)
	handlers.NewDeploymentHandler(deploymentService, limits, logger).RegisterRoutes(mux)
	handlers.NewEnvironmentHandler(environmentService, limits, logger).RegisterRoutes(mux)
	handlers.NewTrackerHandler(trackerService, limits, logger).RegisterRoutes(mux)
	handlers.NewLikeHandler(likeService, limits, logger).RegisterRoutes(mux)
	handlers.NewProjectHandler(projectService, limits, logger).RegisterRoutes(mux)
	handlers.NewUserHandler(userService, limits, logger).RegisterRoutes(mux)
	handlers.NewTagHandler(tagService, logger).RegisterRoutes(mux)
	handlers.NewSubscriptionHandler(subscriptionService, logger).RegisterRoutes(mux)
	handlers.NewIntegrationSettingHandler(settingService, logger).RegisterRoutes(mux)
	handlers.NewVaultSettingsHandler(vaultService, logger).RegisterRoutes(mux)
	handlers.NewEndpointHandler(endpointService, limits, logger).RegisterRoutes(mux)
	handlers.NewTestLogHandler(testLogService, limits, logger).RegisterRoutes(mux)
	handlers.NewRoleHandler(roleService, limits, logger).RegisterRoutes(mux)
	handlers.NewUserThemeHandler(themeService, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting ideahub-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
