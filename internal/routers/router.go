package routers

import (
	"time"

	"github.com/planhub/collab-event-service/internal/app"
	"github.com/planhub/collab-event-service/internal/middleware"
	"github.com/planhub/collab-event-service/internal/routers/api_router"
	"github.com/planhub/collab-event-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     5,
		Quantum:      5,
	},
)

// NewRouter builds the public API router.
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(appContainer.Version().Version))
		if cfg.Tracer.Enabled {
			api.Use(middleware.Tracer(cfg.Tracer.Header))
		}
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))
		api.Use(middleware.Metrics())

		userHandler := api_router.NewUserHandler(appContainer)
		eventHandler := api_router.NewEventHandler(appContainer)
		collabHandler := api_router.NewCollaborationHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.POST("/user/refresh", userHandler.Refresh)

		api.GET("/version", healthHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)

		auth := middleware.UserAuthToken(appContainer.TokenManager, appContainer.IsTokenBlacklisted)

		api.Use(auth).POST("/user/logout", userHandler.Logout)
		api.Use(auth).POST("/user/change_password", userHandler.ChangePassword)
		api.Use(auth).GET("/user/info", userHandler.Info)

		api.Use(auth).POST("/events", eventHandler.Create)
		api.Use(auth).POST("/events/batch", eventHandler.BatchCreate)
		api.Use(auth).GET("/events", eventHandler.List)
		api.Use(auth).GET("/events/:id", eventHandler.Get)
		api.Use(auth).PUT("/events/:id", eventHandler.Update)
		api.Use(auth).DELETE("/events/:id", eventHandler.Delete)

		api.Use(auth).POST("/events/:id/share", collabHandler.Share)
		api.Use(auth).GET("/events/:id/permissions", collabHandler.Permissions)
		api.Use(auth).PUT("/events/:id/permissions/:uid", collabHandler.UpdateRole)
		api.Use(auth).DELETE("/events/:id/permissions/:uid", collabHandler.Revoke)

		api.Use(auth).GET("/events/:id/history", versionHandler.History)
		api.Use(auth).GET("/events/:id/history/:versionId", versionHandler.HistoryVersion)
		api.Use(auth).POST("/events/:id/rollback/:versionId", versionHandler.Rollback)
		api.Use(auth).GET("/events/:id/changelog", versionHandler.Changelog)
		api.Use(auth).GET("/events/:id/diff/:versionA/:versionB", versionHandler.Diff)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
