package app

import (
	"context"
	"fmt"
	"time"

	"github.com/planhub/collab-event-service/internal/dao"
	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/model"
	"github.com/planhub/collab-event-service/internal/service"
	pkgapp "github.com/planhub/collab-event-service/pkg/app"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the application container. It owns the database handle, the
// repositories and every service, wired once at startup.
type App struct {
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	StartTime time.Time

	// Repository layer
	UserRepo      domain.UserRepository
	TokenRepo     domain.TokenRepository
	EventRepo     domain.EventRepository
	PermRepo      domain.PermissionRepository
	VersionRepo   domain.VersionRepository
	ChangelogRepo domain.ChangelogRepository

	// Service layer
	UserService          service.UserService
	EventService         service.EventService
	CollaborationService service.CollaborationService
	VersionService       service.VersionService

	TokenManager pkgapp.TokenManager
}

// NewApp builds the application container and performs the schema
// migration.
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
	}

	if err := model.AutoMigrateAll(db); err != nil {
		return nil, fmt.Errorf("auto migrate failed: %w", err)
	}

	a.Dao = dao.New(db)

	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey:     cfg.Security.AuthTokenKey,
		AccessExpiry:  cfg.GetTokenExpiry(),
		RefreshExpiry: cfg.GetRefreshTokenExpiry(),
		Issuer:        Name,
	})

	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.TokenRepo = dao.NewTokenRepository(a.Dao)
	a.EventRepo = dao.NewEventRepository(a.Dao)
	a.PermRepo = dao.NewPermissionRepository(a.Dao)
	a.VersionRepo = dao.NewVersionRepository(a.Dao)
	a.ChangelogRepo = dao.NewChangelogRepository(a.Dao)

	svcConfig := &service.ServiceConfig{
		User: service.UserServiceConfig{
			RegisterIsEnable: cfg.User.RegisterIsEnable,
		},
		Event: service.EventServiceConfig{
			BatchCreateLimit: cfg.App.BatchCreateLimit,
			DefaultPageSize:  cfg.App.DefaultPageSize,
			MaxPageSize:      cfg.App.MaxPageSize,
		},
	}

	a.UserService = service.NewUserService(a.UserRepo, a.TokenRepo, a.TokenManager, logger, svcConfig)
	a.EventService = service.NewEventService(a.Dao, a.EventRepo, a.PermRepo, a.VersionRepo, a.ChangelogRepo, logger, svcConfig)
	a.CollaborationService = service.NewCollaborationService(a.Dao, a.EventRepo, a.PermRepo, a.UserRepo, logger)
	a.VersionService = service.NewVersionService(a.Dao, a.EventRepo, a.PermRepo, a.VersionRepo, a.ChangelogRepo, logger, svcConfig)

	logger.Info("App container initialized successfully")

	return a, nil
}

// Close releases resources held by the container.
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config returns the application configuration.
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version returns the build version information.
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// IsTokenBlacklisted adapts the token repository for the auth
// middleware.
func (a *App) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return a.TokenRepo.IsBlacklisted(ctx, token)
}
