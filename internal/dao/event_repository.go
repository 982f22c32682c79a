package dao

import (
	"context"
	"time"

	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/model"
	"github.com/planhub/collab-event-service/pkg/timex"
)

type eventRepository struct {
	dao *Dao
}

func NewEventRepository(dao *Dao) domain.EventRepository {
	return &eventRepository{dao: dao}
}

func (r *eventRepository) toDomain(m *model.Event) *domain.Event {
	if m == nil {
		return nil
	}
	return &domain.Event{
		ID:                m.ID,
		UID:               m.UID,
		Title:             m.Title,
		Description:       m.Description,
		StartTime:         time.Time(m.StartTime),
		EndTime:           time.Time(m.EndTime),
		Location:          m.Location,
		IsRecurring:       m.IsRecurring,
		RecurrencePattern: m.RecurrencePattern,
		IsDeleted:         m.IsDeleted == 1,
		CreatedAt:         time.Time(m.CreatedAt),
		UpdatedAt:         time.Time(m.UpdatedAt),
	}
}

func (r *eventRepository) toModel(event *domain.Event) *model.Event {
	if event == nil {
		return nil
	}
	isDeleted := int64(0)
	if event.IsDeleted {
		isDeleted = 1
	}
	return &model.Event{
		ID:                event.ID,
		UID:               event.UID,
		Title:             event.Title,
		Description:       event.Description,
		StartTime:         timex.Time(event.StartTime),
		EndTime:           timex.Time(event.EndTime),
		Location:          event.Location,
		IsRecurring:       event.IsRecurring,
		RecurrencePattern: event.RecurrencePattern,
		IsDeleted:         isDeleted,
		CreatedAt:         timex.Time(event.CreatedAt),
		UpdatedAt:         timex.Time(event.UpdatedAt),
	}
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var m model.Event
	err := r.dao.DB(ctx).Where("id = ? AND is_deleted = 0", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	m := r.toModel(event)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	m := r.toModel(event)
	m.UpdatedAt = timex.Now()
	err := r.dao.DB(ctx).Model(&model.Event{}).
		Where("id = ? AND is_deleted = 0", m.ID).
		Updates(map[string]interface{}{
			"title":              m.Title,
			"description":        m.Description,
			"start_time":         m.StartTime,
			"end_time":           m.EndTime,
			"location":           m.Location,
			"is_recurring":       m.IsRecurring,
			"recurrence_pattern": m.RecurrencePattern,
			"updated_at":         m.UpdatedAt,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, m.ID)
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.DB(ctx).Model(&model.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": 1,
			"updated_at": timex.Now(),
		}).Error
}

// accessibleQuery selects events the user owns or holds a grant on.
const accessibleQuery = "is_deleted = 0 AND (uid = ? OR id IN (SELECT event_id FROM permission WHERE uid = ?))"

func (r *eventRepository) ListAccessible(ctx context.Context, uid int64, page, pageSize int) ([]*domain.Event, error) {
	var ms []*model.Event
	offset := (page - 1) * pageSize
	err := r.dao.DB(ctx).
		Where(accessibleQuery, uid, uid).
		Order("start_time DESC, id DESC").
		Offset(offset).Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0, len(ms))
	for _, m := range ms {
		events = append(events, r.toDomain(m))
	}
	return events, nil
}

func (r *eventRepository) ListAccessibleCount(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.dao.DB(ctx).Model(&model.Event{}).
		Where(accessibleQuery, uid, uid).
		Count(&count).Error
	return count, err
}
