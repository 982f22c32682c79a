package service

import (
	"context"
	"errors"

	"github.com/planhub/collab-event-service/internal/dao"
	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/dto"
	"github.com/planhub/collab-event-service/pkg/code"
	"github.com/planhub/collab-event-service/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CollaborationService manages per-event grants. Only the owner may
// share, change roles or revoke; the owner's own grant is immutable.
type CollaborationService interface {
	// Share grants a user a role on an event.
	Share(ctx context.Context, uid, eventID int64, params *dto.EventShareRequest) (*dto.PermissionDTO, error)

	// ListPermissions lists every grant on an event.
	ListPermissions(ctx context.Context, uid, eventID int64) ([]*dto.PermissionDTO, error)

	// UpdateRole changes an existing grant's role.
	UpdateRole(ctx context.Context, uid, eventID int64, params *dto.PermissionUpdateRequest) (*dto.PermissionDTO, error)

	// Revoke removes a grant.
	Revoke(ctx context.Context, uid, eventID int64, params *dto.PermissionRevokeRequest) error
}

type collaborationService struct {
	dao      *dao.Dao
	permRepo domain.PermissionRepository
	userRepo domain.UserRepository
	guard    *accessGuard
	logger   *zap.Logger
}

// NewCollaborationService creates a CollaborationService instance.
func NewCollaborationService(d *dao.Dao, eventRepo domain.EventRepository, permRepo domain.PermissionRepository, userRepo domain.UserRepository, logger *zap.Logger) CollaborationService {
	return &collaborationService{
		dao:      d,
		permRepo: permRepo,
		userRepo: userRepo,
		guard:    &accessGuard{eventRepo: eventRepo, permRepo: permRepo},
		logger:   logger,
	}
}

func permissionToDTO(perm *domain.Permission) *dto.PermissionDTO {
	if perm == nil {
		return nil
	}
	return &dto.PermissionDTO{
		EventID:   perm.EventID,
		UID:       perm.UID,
		Role:      string(perm.Role),
		GrantedBy: perm.GrantedBy,
		CreatedAt: timex.Time(perm.CreatedAt),
		UpdatedAt: timex.Time(perm.UpdatedAt),
	}
}

func (s *collaborationService) Share(ctx context.Context, uid, eventID int64, params *dto.EventShareRequest) (*dto.PermissionDTO, error) {
	role := domain.Role(params.Role)
	if !role.IsValid() || role == domain.RoleOwner {
		return nil, code.ErrorPermissionInvalidRole
	}

	event, err := s.guard.requireOwner(ctx, eventID, uid)
	if err != nil {
		return nil, err
	}
	if params.UID == event.UID {
		return nil, code.ErrorPermissionOwnerChange
	}

	if _, err := s.userRepo.GetByUID(ctx, params.UID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, code.ErrorDBQuery
	}

	perm, err := s.permRepo.Create(ctx, &domain.Permission{
		EventID:   eventID,
		UID:       params.UID,
		Role:      role,
		GrantedBy: uid,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, code.ErrorPermissionAlreadyExists
		}
		return nil, code.ErrorPermissionShareFailed.WithDetails(err.Error())
	}

	s.logger.Info("event shared",
		zap.Int64("uid", uid),
		zap.Int64("eventId", eventID),
		zap.Int64("granteeUid", params.UID),
		zap.String("role", params.Role),
	)
	return permissionToDTO(perm), nil
}

func (s *collaborationService) ListPermissions(ctx context.Context, uid, eventID int64) ([]*dto.PermissionDTO, error) {
	if _, err := s.guard.requireView(ctx, eventID, uid); err != nil {
		return nil, err
	}

	perms, err := s.permRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, code.ErrorDBQuery
	}

	out := make([]*dto.PermissionDTO, 0, len(perms))
	for _, perm := range perms {
		out = append(out, permissionToDTO(perm))
	}
	return out, nil
}

func (s *collaborationService) UpdateRole(ctx context.Context, uid, eventID int64, params *dto.PermissionUpdateRequest) (*dto.PermissionDTO, error) {
	role := domain.Role(params.Role)
	if !role.IsValid() || role == domain.RoleOwner {
		return nil, code.ErrorPermissionInvalidRole
	}

	event, err := s.guard.requireOwner(ctx, eventID, uid)
	if err != nil {
		return nil, err
	}
	if params.UID == event.UID {
		return nil, code.ErrorPermissionOwnerChange
	}

	if _, err := s.permRepo.Get(ctx, eventID, params.UID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPermissionNotFound
		}
		return nil, code.ErrorDBQuery
	}

	if err := s.permRepo.UpdateRole(ctx, eventID, params.UID, role); err != nil {
		return nil, code.ErrorDBQuery
	}

	perm, err := s.permRepo.Get(ctx, eventID, params.UID)
	if err != nil {
		return nil, code.ErrorDBQuery
	}
	return permissionToDTO(perm), nil
}

func (s *collaborationService) Revoke(ctx context.Context, uid, eventID int64, params *dto.PermissionRevokeRequest) error {
	event, err := s.guard.requireOwner(ctx, eventID, uid)
	if err != nil {
		return err
	}
	if params.UID == event.UID {
		return code.ErrorPermissionOwnerChange
	}

	if _, err := s.permRepo.Get(ctx, eventID, params.UID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorPermissionNotFound
		}
		return code.ErrorDBQuery
	}

	return s.permRepo.Delete(ctx, eventID, params.UID)
}
