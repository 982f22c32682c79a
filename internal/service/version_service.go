package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/planhub/collab-event-service/internal/dao"
	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/dto"
	"github.com/planhub/collab-event-service/pkg/code"
	"github.com/planhub/collab-event-service/pkg/timex"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// VersionService exposes the version ledger: history, rollback,
// changelog and diff.
type VersionService interface {
	// List pages over an event's versions, newest first.
	List(ctx context.Context, uid, eventID int64, page, pageSize int) ([]*dto.VersionDTO, int64, error)

	// Get returns one version of an event.
	Get(ctx context.Context, uid, eventID, versionID int64) (*dto.VersionDTO, error)

	// Rollback restores the fields captured in the target version and
	// appends the result as a new version.
	Rollback(ctx context.Context, uid, eventID, versionID int64) (*dto.RollbackResultDTO, error)

	// Changelog pages over an event's audit log, newest first.
	Changelog(ctx context.Context, uid, eventID int64, page, pageSize int) ([]*dto.ChangelogDTO, int64, error)

	// Diff compares two versions of the same event field by field.
	Diff(ctx context.Context, uid, eventID, versionA, versionB int64) (*dto.DiffDTO, error)
}

type versionService struct {
	dao           *dao.Dao
	eventRepo     domain.EventRepository
	versionRepo   domain.VersionRepository
	changelogRepo domain.ChangelogRepository
	guard         *accessGuard
	sf            *singleflight.Group
	logger        *zap.Logger
	config        *ServiceConfig
}

// NewVersionService creates a VersionService instance.
func NewVersionService(d *dao.Dao, eventRepo domain.EventRepository, permRepo domain.PermissionRepository, versionRepo domain.VersionRepository, changelogRepo domain.ChangelogRepository, logger *zap.Logger, config *ServiceConfig) VersionService {
	return &versionService{
		dao:           d,
		eventRepo:     eventRepo,
		versionRepo:   versionRepo,
		changelogRepo: changelogRepo,
		guard:         &accessGuard{eventRepo: eventRepo, permRepo: permRepo},
		sf:            &singleflight.Group{},
		logger:        logger,
		config:        config,
	}
}

// appendVersion writes the next ledger entry for the event. Numbers
// are allocated as max+1 under a unique (event, number) index. When a
// concurrent writer claims the number first our insert fails with
// gorm.ErrDuplicatedKey and the allocation is retried once.
func appendVersion(ctx context.Context, repo domain.VersionRepository, eventID, uid int64, snapshot map[string]interface{}) (*domain.EventVersion, error) {
	var version *domain.EventVersion
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		number, err := repo.MaxVersionNumber(ctx, eventID)
		if err != nil {
			return nil, code.ErrorVersionAppend.WithDetails(err.Error())
		}

		var previousID int64
		if number > 0 {
			previous, err := repo.GetByNumber(ctx, eventID, number)
			if err != nil {
				return nil, code.ErrorVersionAppend.WithDetails(err.Error())
			}
			previousID = previous.ID
		}

		version, lastErr = repo.Create(ctx, &domain.EventVersion{
			EventID:           eventID,
			VersionNumber:     number + 1,
			Snapshot:          snapshot,
			ChangedBy:         uid,
			PreviousVersionID: previousID,
		})
		if lastErr == nil {
			return version, nil
		}
		if !errors.Is(lastErr, gorm.ErrDuplicatedKey) {
			return nil, code.ErrorVersionAppend.WithDetails(lastErr.Error())
		}
	}
	return nil, code.ErrorVersionConflict.WithDetails(lastErr.Error())
}

func versionToDTO(version *domain.EventVersion) *dto.VersionDTO {
	if version == nil {
		return nil
	}
	return &dto.VersionDTO{
		ID:                version.ID,
		EventID:           version.EventID,
		VersionNumber:     version.VersionNumber,
		Snapshot:          version.Snapshot,
		ChangedBy:         version.ChangedBy,
		PreviousVersionID: version.PreviousVersionID,
		CreatedAt:         timex.Time(version.CreatedAt),
	}
}

func changelogToDTO(entry *domain.ChangelogEntry) *dto.ChangelogDTO {
	if entry == nil {
		return nil
	}
	return &dto.ChangelogDTO{
		ID:          entry.ID,
		EventID:     entry.EventID,
		VersionID:   entry.VersionID,
		ChangedBy:   entry.ChangedBy,
		Action:      entry.Action,
		Description: entry.Description,
		Changes:     entry.Changes,
		CreatedAt:   timex.Time(entry.CreatedAt),
	}
}

func (s *versionService) pageSize(pageSize int) int {
	if pageSize <= 0 {
		return s.config.Event.DefaultPageSize
	}
	if pageSize > s.config.Event.MaxPageSize {
		return s.config.Event.MaxPageSize
	}
	return pageSize
}

func (s *versionService) List(ctx context.Context, uid, eventID int64, page, pageSize int) ([]*dto.VersionDTO, int64, error) {
	if _, err := s.guard.requireView(ctx, eventID, uid); err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	pageSize = s.pageSize(pageSize)

	count, err := s.versionRepo.ListCount(ctx, eventID)
	if err != nil {
		return nil, 0, code.ErrorDBQuery
	}
	if count == 0 {
		return nil, 0, code.ErrorVersionNotFound
	}

	versions, err := s.versionRepo.List(ctx, eventID, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery
	}

	out := make([]*dto.VersionDTO, 0, len(versions))
	for _, version := range versions {
		out = append(out, versionToDTO(version))
	}
	return out, count, nil
}

// getVersion loads a version scoped to the event, distinguishing
// "no such version" from "version belongs to another event".
func (s *versionService) getVersion(ctx context.Context, eventID, versionID int64) (*domain.EventVersion, error) {
	version, err := s.versionRepo.GetByID(ctx, eventID, versionID)
	if err == nil {
		return version, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if _, err := s.versionRepo.GetByIDAny(ctx, versionID); err == nil {
		return nil, code.ErrorVersionWrongEvent
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	return nil, code.ErrorVersionNotFound
}

func (s *versionService) Get(ctx context.Context, uid, eventID, versionID int64) (*dto.VersionDTO, error) {
	if _, err := s.guard.requireView(ctx, eventID, uid); err != nil {
		return nil, err
	}
	version, err := s.getVersion(ctx, eventID, versionID)
	if err != nil {
		return nil, err
	}
	return versionToDTO(version), nil
}

// applySnapshot overlays the fields captured in a snapshot onto the
// event. Snapshots of partial updates carry only the fields that were
// touched, so untouched fields keep their current values.
func applySnapshot(event *domain.Event, snapshot map[string]interface{}) error {
	for key, raw := range snapshot {
		switch key {
		case domain.FieldTitle:
			if v, ok := raw.(string); ok {
				event.Title = v
			}
		case domain.FieldDescription:
			if v, ok := raw.(string); ok {
				event.Description = v
			}
		case domain.FieldStartTime:
			v, ok := raw.(string)
			if !ok {
				continue
			}
			t, err := parseEventTime(v)
			if err != nil {
				return err
			}
			event.StartTime = t
		case domain.FieldEndTime:
			v, ok := raw.(string)
			if !ok {
				continue
			}
			t, err := parseEventTime(v)
			if err != nil {
				return err
			}
			event.EndTime = t
		case domain.FieldLocation:
			if v, ok := raw.(string); ok {
				event.Location = v
			}
		case domain.FieldIsRecurring:
			if v, ok := raw.(bool); ok {
				event.IsRecurring = v
			}
		case domain.FieldRecurrencePattern:
			if v, ok := raw.(string); ok {
				event.RecurrencePattern = v
			}
		}
	}
	return nil
}

func (s *versionService) Rollback(ctx context.Context, uid, eventID, versionID int64) (*dto.RollbackResultDTO, error) {
	var result *dto.RollbackResultDTO

	err := s.dao.Transaction(ctx, func(ctx context.Context) error {
		event, err := s.guard.requireEdit(ctx, eventID, uid)
		if err != nil {
			return err
		}

		target, err := s.getVersion(ctx, eventID, versionID)
		if err != nil {
			return err
		}

		before := event.Snapshot()
		if err := applySnapshot(event, target.Snapshot); err != nil {
			return code.ErrorRollbackFailed.WithDetails(err.Error())
		}
		if !event.EndTime.After(event.StartTime) {
			return code.ErrorEventTimeRange
		}

		updated, err := s.eventRepo.Update(ctx, event)
		if err != nil {
			return code.ErrorRollbackFailed.WithDetails(err.Error())
		}

		// The rollback itself becomes a new, fully-captured version;
		// history is never rewritten.
		version, err := appendVersion(ctx, s.versionRepo, eventID, uid, updated.Snapshot())
		if err != nil {
			return err
		}

		changes := make(map[string]domain.FieldChange)
		for key, diff := range diffSnapshots(before, updated.Snapshot()) {
			changes[key] = fieldChange(diff.From, diff.To)
		}

		if _, err := s.changelogRepo.Create(ctx, &domain.ChangelogEntry{
			EventID:     eventID,
			VersionID:   version.ID,
			ChangedBy:   uid,
			Action:      domain.ActionRollback,
			Description: fmt.Sprintf("Rollback to version %d", target.VersionNumber),
			Changes:     changes,
		}); err != nil {
			return code.ErrorChangelogAppend.WithDetails(err.Error())
		}

		result = &dto.RollbackResultDTO{
			Event:   eventToDTO(updated),
			Version: versionToDTO(version),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("event rolled back",
		zap.Int64("uid", uid),
		zap.Int64("eventId", eventID),
		zap.Int64("versionId", versionID),
		zap.Int64("newVersionNumber", result.Version.VersionNumber),
	)
	return result, nil
}

func (s *versionService) Changelog(ctx context.Context, uid, eventID int64, page, pageSize int) ([]*dto.ChangelogDTO, int64, error) {
	if _, err := s.guard.requireView(ctx, eventID, uid); err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	pageSize = s.pageSize(pageSize)

	count, err := s.changelogRepo.ListCount(ctx, eventID)
	if err != nil {
		return nil, 0, code.ErrorDBQuery
	}
	if count == 0 {
		return nil, 0, code.ErrorChangelogNotFound
	}
	entries, err := s.changelogRepo.List(ctx, eventID, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery
	}

	out := make([]*dto.ChangelogDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, changelogToDTO(entry))
	}
	return out, count, nil
}

func (s *versionService) Diff(ctx context.Context, uid, eventID, versionA, versionB int64) (*dto.DiffDTO, error) {
	if _, err := s.guard.requireView(ctx, eventID, uid); err != nil {
		return nil, err
	}

	// Versions are immutable, so identical concurrent diff requests
	// can share one computation.
	key := fmt.Sprintf("diff:%d:%d:%d", eventID, versionA, versionB)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		a, err := s.getVersion(ctx, eventID, versionA)
		if err != nil {
			return nil, err
		}
		b, err := s.getVersion(ctx, eventID, versionB)
		if err != nil {
			return nil, err
		}
		return &dto.DiffDTO{
			EventID:  eventID,
			VersionA: a.VersionNumber,
			VersionB: b.VersionNumber,
			Fields:   diffSnapshots(a.Snapshot, b.Snapshot),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.DiffDTO), nil
}
