package dao

import (
	"context"
	"time"

	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/model"
	"github.com/planhub/collab-event-service/pkg/timex"

	"github.com/bytedance/sonic"
)

type changelogRepository struct {
	dao *Dao
}

func NewChangelogRepository(dao *Dao) domain.ChangelogRepository {
	return &changelogRepository{dao: dao}
}

func (r *changelogRepository) toDomain(m *model.Changelog) (*domain.ChangelogEntry, error) {
	if m == nil {
		return nil, nil
	}
	entry := &domain.ChangelogEntry{
		ID:          m.ID,
		EventID:     m.EventID,
		VersionID:   m.VersionID,
		ChangedBy:   m.ChangedBy,
		Action:      m.Action,
		Description: m.Description,
		CreatedAt:   time.Time(m.CreatedAt),
	}
	if len(m.Changes) > 0 {
		// Round-trip through JSON to recover typed field changes.
		data, err := sonic.Marshal(map[string]interface{}(m.Changes))
		if err != nil {
			return nil, err
		}
		if err := sonic.Unmarshal(data, &entry.Changes); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

func (r *changelogRepository) toChanges(changes map[string]domain.FieldChange) (model.JSONMap, error) {
	if len(changes) == 0 {
		return nil, nil
	}
	data, err := sonic.Marshal(changes)
	if err != nil {
		return nil, err
	}
	var m model.JSONMap
	if err := sonic.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *changelogRepository) Create(ctx context.Context, entry *domain.ChangelogEntry) (*domain.ChangelogEntry, error) {
	changes, err := r.toChanges(entry.Changes)
	if err != nil {
		return nil, err
	}
	m := &model.Changelog{
		EventID:     entry.EventID,
		VersionID:   entry.VersionID,
		ChangedBy:   entry.ChangedBy,
		Action:      entry.Action,
		Description: entry.Description,
		Changes:     changes,
		CreatedAt:   timex.Now(),
	}
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m)
}

func (r *changelogRepository) List(ctx context.Context, eventID int64, page, pageSize int) ([]*domain.ChangelogEntry, error) {
	var ms []*model.Changelog
	offset := (page - 1) * pageSize
	err := r.dao.DB(ctx).
		Where("event_id = ?", eventID).
		Order("id DESC").
		Offset(offset).Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	entries := make([]*domain.ChangelogEntry, 0, len(ms))
	for _, m := range ms {
		entry, err := r.toDomain(m)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *changelogRepository) ListCount(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	err := r.dao.DB(ctx).Model(&model.Changelog{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
