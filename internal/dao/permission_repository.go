package dao

import (
	"context"
	"time"

	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/model"
	"github.com/planhub/collab-event-service/pkg/timex"
)

type permissionRepository struct {
	dao *Dao
}

func NewPermissionRepository(dao *Dao) domain.PermissionRepository {
	return &permissionRepository{dao: dao}
}

func (r *permissionRepository) toDomain(m *model.Permission) *domain.Permission {
	if m == nil {
		return nil
	}
	return &domain.Permission{
		ID:        m.ID,
		EventID:   m.EventID,
		UID:       m.UID,
		Role:      domain.Role(m.Role),
		GrantedBy: m.GrantedBy,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

func (r *permissionRepository) Get(ctx context.Context, eventID, uid int64) (*domain.Permission, error) {
	var m model.Permission
	err := r.dao.DB(ctx).Where("event_id = ? AND uid = ?", eventID, uid).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *permissionRepository) Create(ctx context.Context, perm *domain.Permission) (*domain.Permission, error) {
	m := &model.Permission{
		EventID:   perm.EventID,
		UID:       perm.UID,
		Role:      string(perm.Role),
		GrantedBy: perm.GrantedBy,
		CreatedAt: timex.Now(),
		UpdatedAt: timex.Now(),
	}
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *permissionRepository) UpdateRole(ctx context.Context, eventID, uid int64, role domain.Role) error {
	return r.dao.DB(ctx).Model(&model.Permission{}).
		Where("event_id = ? AND uid = ?", eventID, uid).
		Updates(map[string]interface{}{
			"role":       string(role),
			"updated_at": timex.Now(),
		}).Error
}

func (r *permissionRepository) Delete(ctx context.Context, eventID, uid int64) error {
	return r.dao.DB(ctx).
		Where("event_id = ? AND uid = ?", eventID, uid).
		Delete(&model.Permission{}).Error
}

func (r *permissionRepository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Permission, error) {
	var ms []*model.Permission
	err := r.dao.DB(ctx).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	perms := make([]*domain.Permission, 0, len(ms))
	for _, m := range ms {
		perms = append(perms, r.toDomain(m))
	}
	return perms, nil
}

func (r *permissionRepository) DeleteByEvent(ctx context.Context, eventID int64) error {
	return r.dao.DB(ctx).
		Where("event_id = ?", eventID).
		Delete(&model.Permission{}).Error
}
