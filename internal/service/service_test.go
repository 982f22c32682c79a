package service

import (
	"context"
	"testing"
	"time"

	"github.com/planhub/collab-event-service/internal/dao"
	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/dto"
	"github.com/planhub/collab-event-service/internal/model"
	"github.com/planhub/collab-event-service/pkg/app"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv wires every service onto one in-memory database. The raw
// event repository is kept for tests that seed rows below the
// service layer.
type testEnv struct {
	users     UserService
	events    EventService
	collab    CollaborationService
	ledger    VersionService
	tokens    app.TokenManager
	eventRepo domain.EventRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := dao.NewDBEngine(dao.DatabaseConfig{
		Type:         "sqlite",
		Path:         ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, false)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrateAll(db))

	d := dao.New(db)
	logger := zap.NewNop()
	config := &ServiceConfig{
		User: UserServiceConfig{RegisterIsEnable: true},
		Event: EventServiceConfig{
			BatchCreateLimit: 100,
			DefaultPageSize:  20,
			MaxPageSize:      100,
		},
	}

	userRepo := dao.NewUserRepository(d)
	tokenRepo := dao.NewTokenRepository(d)
	eventRepo := dao.NewEventRepository(d)
	permRepo := dao.NewPermissionRepository(d)
	versionRepo := dao.NewVersionRepository(d)
	changelogRepo := dao.NewChangelogRepository(d)

	tokens := app.NewTokenManager(app.TokenConfig{
		SecretKey:    "test-secret",
		AccessExpiry: time.Hour,
	})

	return &testEnv{
		users:     NewUserService(userRepo, tokenRepo, tokens, logger, config),
		events:    NewEventService(d, eventRepo, permRepo, versionRepo, changelogRepo, logger, config),
		collab:    NewCollaborationService(d, eventRepo, permRepo, userRepo, logger),
		ledger:    NewVersionService(d, eventRepo, permRepo, versionRepo, changelogRepo, logger, config),
		tokens:    tokens,
		eventRepo: eventRepo,
	}
}

// register creates an account and returns its UID.
func (e *testEnv) register(t *testing.T, username string) int64 {
	t.Helper()
	out, err := e.users.Register(context.Background(), &dto.UserCreateRequest{
		Email:           username + "@example.com",
		Username:        username,
		Password:        "password123",
		ConfirmPassword: "password123",
	}, "127.0.0.1")
	require.NoError(t, err)
	return out.UID
}

// createEvent stores a simple event owned by uid.
func (e *testEnv) createEvent(t *testing.T, uid int64, title string) *dto.EventDTO {
	t.Helper()
	event, err := e.events.Create(context.Background(), uid, &dto.EventCreateRequest{
		Title:     title,
		StartTime: "2026-09-01T10:00:00Z",
		EndTime:   "2026-09-01T11:00:00Z",
		Location:  "Room 1",
	})
	require.NoError(t, err)
	return event
}

// present wraps a value as a provided optional field.
func present[T any](v T) dto.Field[T] {
	return dto.Field[T]{Present: true, Valid: true, Value: v}
}
