package service

import (
	"context"
	"errors"

	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/pkg/code"

	"gorm.io/gorm"
)

// accessGuard resolves a caller's effective role on an event.
// The event owner always holds the owner role, with or without a
// permission row.
type accessGuard struct {
	eventRepo domain.EventRepository
	permRepo  domain.PermissionRepository
}

// resolve loads the event and the caller's role on it.
func (g *accessGuard) resolve(ctx context.Context, eventID, uid int64) (*domain.Event, domain.Role, error) {
	event, err := g.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", code.ErrorEventNotFound
		}
		return nil, "", code.ErrorDBQuery
	}

	if event.UID == uid {
		return event, domain.RoleOwner, nil
	}

	perm, err := g.permRepo.Get(ctx, eventID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Hide the event's existence from strangers.
			return nil, "", code.ErrorEventNotFound
		}
		return nil, "", code.ErrorDBQuery
	}
	return event, perm.Role, nil
}

func (g *accessGuard) requireView(ctx context.Context, eventID, uid int64) (*domain.Event, error) {
	event, role, err := g.resolve(ctx, eventID, uid)
	if err != nil {
		return nil, err
	}
	if !role.CanView() {
		return nil, code.ErrorPermissionDenied
	}
	return event, nil
}

func (g *accessGuard) requireEdit(ctx context.Context, eventID, uid int64) (*domain.Event, error) {
	event, role, err := g.resolve(ctx, eventID, uid)
	if err != nil {
		return nil, err
	}
	if !role.CanEdit() {
		return nil, code.ErrorPermissionDenied
	}
	return event, nil
}

func (g *accessGuard) requireOwner(ctx context.Context, eventID, uid int64) (*domain.Event, error) {
	event, role, err := g.resolve(ctx, eventID, uid)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleOwner {
		return nil, code.ErrorPermissionDenied
	}
	return event, nil
}
