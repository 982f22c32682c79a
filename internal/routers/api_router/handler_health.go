package api_router

import (
	"time"

	"github.com/planhub/collab-event-service/internal/app"
	pkgapp "github.com/planhub/collab-event-service/pkg/app"
	"github.com/planhub/collab-event-service/pkg/code"
	"github.com/planhub/collab-event-service/pkg/util"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service and host health.
type HealthHandler struct {
	*Handler
}

// NewHealthHandler creates a HealthHandler instance.
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status   string           `json:"status"`
	Version  string           `json:"version"`
	Uptime   float64          `json:"uptime"`
	Database string           `json:"database"`
	System   *util.SystemInfo `json:"system,omitempty"`
}

// Check reports service health including the database connection.
// Pass system=1 to include a host resource snapshot.
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{
		Status:   "healthy",
		Version:  h.App.Version().Version,
		Uptime:   time.Since(h.App.StartTime).Seconds(),
		Database: "connected",
	}

	if c.Query("system") == "1" {
		response.System = util.GetSystemInfo()
	}

	if err := h.App.DB.Raw("SELECT 1").Error; err != nil {
		response.Status = "unhealthy"
		response.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.ErrorDBQuery.WithData(response))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
}

// ServerVersion returns the build version information.
func (h *HealthHandler) ServerVersion(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(h.App.Version()))
}
