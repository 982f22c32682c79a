package dao

import (
	"context"
	"time"

	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/model"
	"github.com/planhub/collab-event-service/pkg/timex"

	"gorm.io/gorm"
)

type versionRepository struct {
	dao *Dao
}

func NewVersionRepository(dao *Dao) domain.VersionRepository {
	return &versionRepository{dao: dao}
}

func (r *versionRepository) toDomain(m *model.EventVersion) *domain.EventVersion {
	if m == nil {
		return nil
	}
	return &domain.EventVersion{
		ID:                m.ID,
		EventID:           m.EventID,
		VersionNumber:     m.VersionNumber,
		Snapshot:          map[string]interface{}(m.Snapshot),
		ChangedBy:         m.ChangedBy,
		PreviousVersionID: m.PreviousVersionID,
		CreatedAt:         time.Time(m.CreatedAt),
	}
}

func (r *versionRepository) Create(ctx context.Context, version *domain.EventVersion) (*domain.EventVersion, error) {
	m := &model.EventVersion{
		EventID:           version.EventID,
		VersionNumber:     version.VersionNumber,
		Snapshot:          model.JSONMap(version.Snapshot),
		ChangedBy:         version.ChangedBy,
		PreviousVersionID: version.PreviousVersionID,
		CreatedAt:         timex.Now(),
	}
	db := r.dao.DB(ctx)
	if _, inTx := ctx.Value(txKey{}).(*gorm.DB); inTx {
		// A constraint failure aborts the whole transaction on
		// postgres; the savepoint keeps the number-allocation retry
		// usable inside one transaction.
		if err := db.SavePoint("version_append").Error; err != nil {
			return nil, err
		}
		if err := db.Create(m).Error; err != nil {
			db.RollbackTo("version_append")
			return nil, err
		}
		return r.toDomain(m), nil
	}
	if err := db.Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *versionRepository) GetByID(ctx context.Context, eventID, versionID int64) (*domain.EventVersion, error) {
	var m model.EventVersion
	err := r.dao.DB(ctx).Where("id = ? AND event_id = ?", versionID, eventID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *versionRepository) GetByIDAny(ctx context.Context, versionID int64) (*domain.EventVersion, error) {
	var m model.EventVersion
	err := r.dao.DB(ctx).Where("id = ?", versionID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *versionRepository) GetByNumber(ctx context.Context, eventID, number int64) (*domain.EventVersion, error) {
	var m model.EventVersion
	err := r.dao.DB(ctx).Where("event_id = ? AND version_number = ?", eventID, number).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *versionRepository) GetLatest(ctx context.Context, eventID int64) (*domain.EventVersion, error) {
	var m model.EventVersion
	err := r.dao.DB(ctx).
		Where("event_id = ?", eventID).
		Order("version_number DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *versionRepository) MaxVersionNumber(ctx context.Context, eventID int64) (int64, error) {
	var number int64
	err := r.dao.DB(ctx).Model(&model.EventVersion{}).
		Where("event_id = ?", eventID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&number).Error
	return number, err
}

func (r *versionRepository) List(ctx context.Context, eventID int64, page, pageSize int) ([]*domain.EventVersion, error) {
	var ms []*model.EventVersion
	offset := (page - 1) * pageSize
	err := r.dao.DB(ctx).
		Where("event_id = ?", eventID).
		Order("version_number DESC").
		Offset(offset).Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	versions := make([]*domain.EventVersion, 0, len(ms))
	for _, m := range ms {
		versions = append(versions, r.toDomain(m))
	}
	return versions, nil
}

func (r *versionRepository) ListCount(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	err := r.dao.DB(ctx).Model(&model.EventVersion{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
