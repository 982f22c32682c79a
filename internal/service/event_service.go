package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/planhub/collab-event-service/internal/dao"
	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/dto"
	"github.com/planhub/collab-event-service/pkg/code"
	"github.com/planhub/collab-event-service/pkg/timex"

	"go.uber.org/zap"
)

// EventService handles event CRUD. Every write also appends to the
// event's version ledger and changelog in the same transaction.
type EventService interface {
	// Create stores a new event and its first version.
	Create(ctx context.Context, uid int64, params *dto.EventCreateRequest) (*dto.EventDTO, error)

	// BatchCreate stores several events atomically.
	BatchCreate(ctx context.Context, uid int64, params *dto.EventBatchCreateRequest) ([]*dto.EventDTO, error)

	// Get returns an event the caller may view.
	Get(ctx context.Context, uid, eventID int64) (*dto.EventDTO, error)

	// List pages over events the caller owns or was granted access to.
	List(ctx context.Context, uid int64, page, pageSize int) ([]*dto.EventDTO, int64, error)

	// Update applies the provided fields and appends a version.
	Update(ctx context.Context, uid, eventID int64, params *dto.EventUpdateRequest) (*dto.EventDTO, error)

	// Delete soft-deletes an event the caller owns.
	Delete(ctx context.Context, uid, eventID int64) error
}

type eventService struct {
	dao           *dao.Dao
	eventRepo     domain.EventRepository
	permRepo      domain.PermissionRepository
	versionRepo   domain.VersionRepository
	changelogRepo domain.ChangelogRepository
	guard         *accessGuard
	logger        *zap.Logger
	config        *ServiceConfig
}

// NewEventService creates an EventService instance.
func NewEventService(d *dao.Dao, eventRepo domain.EventRepository, permRepo domain.PermissionRepository, versionRepo domain.VersionRepository, changelogRepo domain.ChangelogRepository, logger *zap.Logger, config *ServiceConfig) EventService {
	return &eventService{
		dao:           d,
		eventRepo:     eventRepo,
		permRepo:      permRepo,
		versionRepo:   versionRepo,
		changelogRepo: changelogRepo,
		guard:         &accessGuard{eventRepo: eventRepo, permRepo: permRepo},
		logger:        logger,
		config:        config,
	}
}

func eventToDTO(event *domain.Event) *dto.EventDTO {
	if event == nil {
		return nil
	}
	return &dto.EventDTO{
		ID:                event.ID,
		UID:               event.UID,
		Title:             event.Title,
		Description:       event.Description,
		StartTime:         timex.Time(event.StartTime),
		EndTime:           timex.Time(event.EndTime),
		Location:          event.Location,
		IsRecurring:       event.IsRecurring,
		RecurrencePattern: event.RecurrencePattern,
		CreatedAt:         timex.Time(event.CreatedAt),
		UpdatedAt:         timex.Time(event.UpdatedAt),
	}
}

func (s *eventService) pageSize(pageSize int) int {
	if pageSize <= 0 {
		return s.config.Event.DefaultPageSize
	}
	if pageSize > s.config.Event.MaxPageSize {
		return s.config.Event.MaxPageSize
	}
	return pageSize
}

// createOne inserts the event, the owner grant, version 1 and its
// changelog entry. Must run inside a transaction.
func (s *eventService) createOne(ctx context.Context, uid int64, params *dto.EventCreateRequest) (*domain.Event, error) {
	startTime, err := parseEventTime(params.StartTime)
	if err != nil {
		return nil, code.ErrorInvalidParams.WithDetails("startTime: " + err.Error())
	}
	endTime, err := parseEventTime(params.EndTime)
	if err != nil {
		return nil, code.ErrorInvalidParams.WithDetails("endTime: " + err.Error())
	}
	if !endTime.After(startTime) {
		return nil, code.ErrorEventTimeRange
	}

	event, err := s.eventRepo.Create(ctx, &domain.Event{
		UID:               uid,
		Title:             params.Title,
		Description:       params.Description,
		StartTime:         startTime,
		EndTime:           endTime,
		Location:          params.Location,
		IsRecurring:       params.IsRecurring,
		RecurrencePattern: params.RecurrencePattern,
	})
	if err != nil {
		return nil, code.ErrorEventCreateFailed.WithDetails(err.Error())
	}

	if _, err := s.permRepo.Create(ctx, &domain.Permission{
		EventID:   event.ID,
		UID:       uid,
		Role:      domain.RoleOwner,
		GrantedBy: uid,
	}); err != nil {
		return nil, code.ErrorEventCreateFailed.WithDetails(err.Error())
	}

	if _, err := s.versionRepo.Create(ctx, &domain.EventVersion{
		EventID:       event.ID,
		VersionNumber: 1,
		Snapshot:      event.Snapshot(),
		ChangedBy:     uid,
	}); err != nil {
		return nil, code.ErrorVersionAppend.WithDetails(err.Error())
	}

	// The creation entry has no version reference. A zero VersionID
	// marks "none" throughout the changelog.
	if _, err := s.changelogRepo.Create(ctx, &domain.ChangelogEntry{
		EventID:     event.ID,
		ChangedBy:   uid,
		Action:      domain.ActionCreated,
		Description: "Event created",
	}); err != nil {
		return nil, code.ErrorChangelogAppend.WithDetails(err.Error())
	}

	return event, nil
}

func (s *eventService) Create(ctx context.Context, uid int64, params *dto.EventCreateRequest) (*dto.EventDTO, error) {
	var event *domain.Event
	err := s.dao.Transaction(ctx, func(ctx context.Context) error {
		var err error
		event, err = s.createOne(ctx, uid, params)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("event created",
		zap.Int64("uid", uid),
		zap.Int64("eventId", event.ID),
	)
	return eventToDTO(event), nil
}

func (s *eventService) BatchCreate(ctx context.Context, uid int64, params *dto.EventBatchCreateRequest) ([]*dto.EventDTO, error) {
	limit := s.config.Event.BatchCreateLimit
	if limit > 0 && len(params.Events) > limit {
		return nil, code.ErrorInvalidParams.WithDetails(fmt.Sprintf("batch size exceeds limit of %d", limit))
	}

	var events []*domain.Event
	err := s.dao.Transaction(ctx, func(ctx context.Context) error {
		for i := range params.Events {
			event, err := s.createOne(ctx, uid, &params.Events[i])
			if err != nil {
				return err
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*dto.EventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, eventToDTO(event))
	}
	return out, nil
}

func (s *eventService) Get(ctx context.Context, uid, eventID int64) (*dto.EventDTO, error) {
	event, err := s.guard.requireView(ctx, eventID, uid)
	if err != nil {
		return nil, err
	}
	return eventToDTO(event), nil
}

func (s *eventService) List(ctx context.Context, uid int64, page, pageSize int) ([]*dto.EventDTO, int64, error) {
	if page <= 0 {
		page = 1
	}
	pageSize = s.pageSize(pageSize)

	count, err := s.eventRepo.ListAccessibleCount(ctx, uid)
	if err != nil {
		return nil, 0, code.ErrorDBQuery
	}
	events, err := s.eventRepo.ListAccessible(ctx, uid, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery
	}

	out := make([]*dto.EventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, eventToDTO(event))
	}
	return out, count, nil
}

// applyUpdate mutates event in place with the fields present in the
// request and returns the changelog changes plus the partial snapshot
// covering the provided fields.
func applyUpdate(event *domain.Event, params *dto.EventUpdateRequest) (map[string]domain.FieldChange, map[string]interface{}, error) {
	changes := make(map[string]domain.FieldChange)
	snapshot := make(map[string]interface{})

	if params.Title.Present {
		value, ok := params.Title.Get()
		if !ok || value == "" {
			return nil, nil, code.ErrorInvalidParams.WithDetails("title cannot be empty")
		}
		if value != event.Title {
			changes[domain.FieldTitle] = fieldChange(event.Title, value)
		}
		event.Title = value
		snapshot[domain.FieldTitle] = value
	}

	if params.Description.Present {
		value, _ := params.Description.Get()
		if value != event.Description {
			changes[domain.FieldDescription] = fieldChange(event.Description, value)
		}
		event.Description = value
		snapshot[domain.FieldDescription] = value
	}

	if params.StartTime.Present {
		raw, ok := params.StartTime.Get()
		if !ok {
			return nil, nil, code.ErrorInvalidParams.WithDetails("startTime cannot be null")
		}
		value, err := parseEventTime(raw)
		if err != nil {
			return nil, nil, code.ErrorInvalidParams.WithDetails("startTime: " + err.Error())
		}
		if !value.Equal(event.StartTime) {
			changes[domain.FieldStartTime] = fieldChange(
				event.StartTime.UTC().Format(time.RFC3339),
				value.UTC().Format(time.RFC3339),
			)
		}
		event.StartTime = value
		snapshot[domain.FieldStartTime] = value.UTC().Format(time.RFC3339)
	}

	if params.EndTime.Present {
		raw, ok := params.EndTime.Get()
		if !ok {
			return nil, nil, code.ErrorInvalidParams.WithDetails("endTime cannot be null")
		}
		value, err := parseEventTime(raw)
		if err != nil {
			return nil, nil, code.ErrorInvalidParams.WithDetails("endTime: " + err.Error())
		}
		if !value.Equal(event.EndTime) {
			changes[domain.FieldEndTime] = fieldChange(
				event.EndTime.UTC().Format(time.RFC3339),
				value.UTC().Format(time.RFC3339),
			)
		}
		event.EndTime = value
		snapshot[domain.FieldEndTime] = value.UTC().Format(time.RFC3339)
	}

	if params.Location.Present {
		value, _ := params.Location.Get()
		if value != event.Location {
			changes[domain.FieldLocation] = fieldChange(event.Location, value)
		}
		event.Location = value
		snapshot[domain.FieldLocation] = value
	}

	if params.IsRecurring.Present {
		value, _ := params.IsRecurring.Get()
		if value != event.IsRecurring {
			changes[domain.FieldIsRecurring] = fieldChange(event.IsRecurring, value)
		}
		event.IsRecurring = value
		snapshot[domain.FieldIsRecurring] = value
	}

	if params.RecurrencePattern.Present {
		value, _ := params.RecurrencePattern.Get()
		if value != event.RecurrencePattern {
			changes[domain.FieldRecurrencePattern] = fieldChange(event.RecurrencePattern, value)
		}
		event.RecurrencePattern = value
		snapshot[domain.FieldRecurrencePattern] = value
	}

	if len(snapshot) == 0 {
		return nil, nil, code.ErrorInvalidParams.WithDetails("no fields to update")
	}

	if !event.EndTime.After(event.StartTime) {
		return nil, nil, code.ErrorEventTimeRange
	}

	return changes, snapshot, nil
}

// changeSummary renders a short changelog description like
// "Updated: location, title".
func changeSummary(changes map[string]domain.FieldChange) string {
	names := make([]string, 0, len(changes))
	for name := range changes {
		names = append(names, name)
	}
	sort.Strings(names)
	return "Updated: " + strings.Join(names, ", ")
}

func (s *eventService) Update(ctx context.Context, uid, eventID int64, params *dto.EventUpdateRequest) (*dto.EventDTO, error) {
	var updated *domain.Event

	err := s.dao.Transaction(ctx, func(ctx context.Context) error {
		event, err := s.guard.requireEdit(ctx, eventID, uid)
		if err != nil {
			return err
		}

		changes, snapshot, err := applyUpdate(event, params)
		if err != nil {
			return err
		}

		// Nothing actually changed: keep the ledger quiet.
		if len(changes) == 0 {
			updated = event
			return nil
		}

		updated, err = s.eventRepo.Update(ctx, event)
		if err != nil {
			return code.ErrorEventUpdateFailed.WithDetails(err.Error())
		}

		version, err := s.appendVersion(ctx, eventID, uid, snapshot)
		if err != nil {
			return err
		}

		if _, err := s.changelogRepo.Create(ctx, &domain.ChangelogEntry{
			EventID:     eventID,
			VersionID:   version.ID,
			ChangedBy:   uid,
			Action:      domain.ActionUpdated,
			Description: changeSummary(changes),
			Changes:     changes,
		}); err != nil {
			return code.ErrorChangelogAppend.WithDetails(err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return eventToDTO(updated), nil
}

// appendVersion writes the next ledger entry for the event. The
// version number is max+1; if a concurrent writer takes the number
// first, the unique index rejects ours and we retry once.
func (s *eventService) appendVersion(ctx context.Context, eventID, uid int64, snapshot map[string]interface{}) (*domain.EventVersion, error) {
	return appendVersion(ctx, s.versionRepo, eventID, uid, snapshot)
}

func (s *eventService) Delete(ctx context.Context, uid, eventID int64) error {
	err := s.dao.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.guard.requireOwner(ctx, eventID, uid); err != nil {
			return err
		}
		if err := s.eventRepo.Delete(ctx, eventID); err != nil {
			return code.ErrorEventDeleteFailed.WithDetails(err.Error())
		}
		// Grants go with the event; the ledger stays for auditing.
		if err := s.permRepo.DeleteByEvent(ctx, eventID); err != nil {
			return code.ErrorEventDeleteFailed.WithDetails(err.Error())
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("event deleted",
		zap.Int64("uid", uid),
		zap.Int64("eventId", eventID),
	)
	return nil
}
