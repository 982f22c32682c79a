package task

import (
	"github.com/planhub/collab-event-service/internal/app"
	"github.com/planhub/collab-event-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager creates and schedules all background tasks.
type Manager struct {
	scheduler *Scheduler
	app       *app.App
	logger    *zap.Logger
}

// NewManager creates a task manager bound to the application container.
func NewManager(appContainer *app.App, logger *zap.Logger, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		app:       appContainer,
		logger:    logger,
	}
}

// RegisterTasks registers every known task.
func (m *Manager) RegisterTasks() {
	m.scheduler.AddTask(NewTokenCleanupTask(m.app))
	m.scheduler.AddTask(NewDbMaintenanceTask(m.app))
}

// Start launches the registered tasks.
func (m *Manager) Start() {
	m.scheduler.Start()
}
