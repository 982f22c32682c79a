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

// CollaborationHandler handles event sharing and permission requests.
type CollaborationHandler struct {
	*Handler
}

// NewCollaborationHandler creates a CollaborationHandler instance.
func NewCollaborationHandler(a *app.App) *CollaborationHandler {
	return &CollaborationHandler{Handler: NewHandler(a)}
}

func granteeUIDParam(c *gin.Context, response *pkgapp.Response) int64 {
	uid, err := convert.StrTo(c.Param("uid")).Int64()
	if err != nil || uid <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("invalid uid"))
		return 0
	}
	return uid
}

// Share grants another user a role on an event. Owner only.
func (h *CollaborationHandler) Share(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	eventID := eventIDParam(c, response)
	if eventID == 0 {
		return
	}

	params := &dto.EventShareRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("CollaborationHandler.Share.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}

	ctx := c.Request.Context()

	permDTO, err := h.App.CollaborationService.Share(ctx, pkgapp.GetUID(c), eventID, params)
	if err != nil {
		h.logError(ctx, "CollaborationHandler.Share", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(permDTO))
}

// Permissions lists every grant on an event.
func (h *CollaborationHandler) Permissions(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	eventID := eventIDParam(c, response)
	if eventID == 0 {
		return
	}

	ctx := c.Request.Context()

	permDTOs, err := h.App.CollaborationService.ListPermissions(ctx, pkgapp.GetUID(c), eventID)
	if err != nil {
		h.logError(ctx, "CollaborationHandler.Permissions", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(permDTOs))
}

// UpdateRole changes an existing grant's role. Owner only.
func (h *CollaborationHandler) UpdateRole(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	eventID := eventIDParam(c, response)
	if eventID == 0 {
		return
	}
	granteeUID := granteeUIDParam(c, response)
	if granteeUID == 0 {
		return
	}

	params := &dto.PermissionUpdateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("CollaborationHandler.UpdateRole.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.Maps()))
		return
	}
	params.UID = granteeUID

	ctx := c.Request.Context()

	permDTO, err := h.App.CollaborationService.UpdateRole(ctx, pkgapp.GetUID(c), eventID, params)
	if err != nil {
		h.logError(ctx, "CollaborationHandler.UpdateRole", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(permDTO))
}

// Revoke removes a grant. Owner only.
func (h *CollaborationHandler) Revoke(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	eventID := eventIDParam(c, response)
	if eventID == 0 {
		return
	}
	granteeUID := granteeUIDParam(c, response)
	if granteeUID == 0 {
		return
	}

	params := &dto.PermissionRevokeRequest{UID: granteeUID}

	ctx := c.Request.Context()

	if err := h.App.CollaborationService.Revoke(ctx, pkgapp.GetUID(c), eventID, params); err != nil {
		h.logError(ctx, "CollaborationHandler.Revoke", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
