package api_router

import (
	"github.com/planhub/collab-event-service/internal/app"
	pkgapp "github.com/planhub/collab-event-service/pkg/app"
	"github.com/planhub/collab-event-service/pkg/code"
	"github.com/planhub/collab-event-service/pkg/convert"
	apperrors "github.com/planhub/collab-event-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// VersionHandler handles the version ledger requests: history,
// rollback, changelog and diff.
type VersionHandler struct {
	*Handler
}

// NewVersionHandler creates a VersionHandler instance.
func NewVersionHandler(a *app.App) *VersionHandler {
	return &VersionHandler{Handler: NewHandler(a)}
}

func versionIDParam(c *gin.Context, response *pkgapp.Response, name string) int64 {
	id, err := convert.StrTo(c.Param(name)).Int64()
	if err != nil || id <= 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("invalid version id"))
		return 0
	}
	return id
}

// History pages over an event's versions, newest first.
func (h *VersionHandler) History(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	eventID := eventIDParam(c, response)
	if eventID == 0 {
		return
	}

	ctx := c.Request.Context()

	versionDTOs, total, err := h.App.VersionService.List(ctx, pkgapp.GetUID(c), eventID,
		pkgapp.GetPage(c), pkgapp.GetPageSize(c))
	if err != nil {
		h.logError(ctx, "VersionHandler.History", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, versionDTOs, int(total))
}

// HistoryVersion returns one version of an event.
func (h *VersionHandler) HistoryVersion(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	eventID := eventIDParam(c, response)
	if eventID == 0 {
		return
	}
	versionID := versionIDParam(c, response, "versionId")
	if versionID == 0 {
		return
	}

	ctx := c.Request.Context()

	versionDTO, err := h.App.VersionService.Get(ctx, pkgapp.GetUID(c), eventID, versionID)
	if err != nil {
		h.logError(ctx, "VersionHandler.HistoryVersion", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(versionDTO))
}

// Rollback restores the fields captured in the target version and
// appends the result as a new version.
func (h *VersionHandler) Rollback(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	eventID := eventIDParam(c, response)
	if eventID == 0 {
		return
	}
	versionID := versionIDParam(c, response, "versionId")
	if versionID == 0 {
		return
	}

	ctx := c.Request.Context()

	result, err := h.App.VersionService.Rollback(ctx, pkgapp.GetUID(c), eventID, versionID)
	if err != nil {
		h.logError(ctx, "VersionHandler.Rollback", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Changelog pages over an event's audit log, newest first.
func (h *VersionHandler) Changelog(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	eventID := eventIDParam(c, response)
	if eventID == 0 {
		return
	}

	ctx := c.Request.Context()

	changelogDTOs, total, err := h.App.VersionService.Changelog(ctx, pkgapp.GetUID(c), eventID,
		pkgapp.GetPage(c), pkgapp.GetPageSize(c))
	if err != nil {
		h.logError(ctx, "VersionHandler.Changelog", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, changelogDTOs, int(total))
}

// Diff compares two versions of the same event field by field.
func (h *VersionHandler) Diff(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	eventID := eventIDParam(c, response)
	if eventID == 0 {
		return
	}
	versionA := versionIDParam(c, response, "versionA")
	if versionA == 0 {
		return
	}
	versionB := versionIDParam(c, response, "versionB")
	if versionB == 0 {
		return
	}

	ctx := c.Request.Context()

	diffDTO, err := h.App.VersionService.Diff(ctx, pkgapp.GetUID(c), eventID, versionA, versionB)
	if err != nil {
		h.logError(ctx, "VersionHandler.Diff", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(diffDTO))
}
