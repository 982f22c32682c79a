// Package api_router contains the HTTP API route handlers.
package api_router

import (
	"context"

	"github.com/planhub/collab-event-service/internal/app"
	"github.com/planhub/collab-event-service/internal/middleware"

	"go.uber.org/zap"
)

// Handler is the base handler every API handler embeds. It carries the
// application container for dependency access.
type Handler struct {
	App *app.App
}

// NewHandler creates a base Handler instance.
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// logError records an error log entry including the request trace ID.
func (h *Handler) logError(ctx context.Context, method string, err error) {
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", middleware.GetTraceID(ctx)),
	)
}
