package api_router

import (
	"github.com/planhub/collab-event-service/internal/app"
	"github.com/planhub/collab-event-service/internal/dto"
	pkgapp "github.com/planhub/collab-event-service/pkg/app"
	"github.com/planhub/collab-event-service/pkg/code"
	"github.com/planhub/collab-event-service/pkg/convert"
	apperrors "github.com/planhub/collab-event-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventHandler handles event CRUD requests.
type EventHandler struct {
	*Handler
}

// NewEventHandler creates an EventHandler instance.
func NewEventHandler(a *app.App) *EventHandler {
	return &EventHandler{Handler: NewHandler(a)}
}

// eventIDParam parses the :id path parameter. A zero return means the
// parameter was invalid and the response has been written.
func eventIDParam(c *gin.Context, response *pkgapp.Response) int64 {
	id, err := convert.StrTo(c.Param("id")).Int64()
	if err != nil || id <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("invalid event id"))
		return 0
	}
	return id
}

// Create stores a new event and its first version.
func (h *EventHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EventCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EventHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	eventDTO, err := h.App.EventService.Create(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "EventHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(eventDTO))
}

// BatchCreate stores several events in one atomic request.
func (h *EventHandler) BatchCreate(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EventBatchCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EventHandler.BatchCreate.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	eventDTOs, err := h.App.EventService.BatchCreate(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "EventHandler.BatchCreate", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(eventDTOs))
}

// Get returns one event the caller may view.
func (h *EventHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	eventID := eventIDParam(c, response)
	if eventID == 0 {
		return
	}

	ctx := c.Request.Context()

	eventDTO, err := h.App.EventService.Get(ctx, pkgapp.GetUID(c), eventID)
	if err != nil {
		h.logError(ctx, "EventHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(eventDTO))
}

// List pages over events the caller owns or was granted access to.
func (h *EventHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSize(c)

	eventDTOs, total, err := h.App.EventService.List(ctx, pkgapp.GetUID(c), page, pageSize)
	if err != nil {
		h.logError(ctx, "EventHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, eventDTOs, int(total))
}

// Update applies the provided fields and appends a version.
func (h *EventHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	eventID := eventIDParam(c, response)
	if eventID == 0 {
		return
	}

	params := &dto.EventUpdateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EventHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	eventDTO, err := h.App.EventService.Update(ctx, pkgapp.GetUID(c), eventID, params)
	if err != nil {
		h.logError(ctx, "EventHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(eventDTO))
}

// Delete soft-deletes an event the caller owns.
func (h *EventHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	eventID := eventIDParam(c, response)
	if eventID == 0 {
		return
	}

	ctx := c.Request.Context()

	if err := h.App.EventService.Delete(ctx, pkgapp.GetUID(c), eventID); err != nil {
		h.logError(ctx, "EventHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
