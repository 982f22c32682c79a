package task

import (
	"context"
	"time"

	"github.com/planhub/collab-event-service/internal/app"

	"go.uber.org/zap"
)

// DbMaintenanceTask keeps the storage backend compact. The version
// ledger is append-only, so the tables only ever grow.
type DbMaintenanceTask struct {
	app *app.App
}

// NewDbMaintenanceTask creates the storage maintenance task.
func NewDbMaintenanceTask(appContainer *app.App) Task {
	return &DbMaintenanceTask{app: appContainer}
}

func (t *DbMaintenanceTask) Name() string {
	return "DbMaintenance"
}

func (t *DbMaintenanceTask) LoopInterval() time.Duration {
	return t.app.Config().GetDBMaintenanceInterval()
}

func (t *DbMaintenanceTask) IsStartupRun() bool {
	return false
}

func (t *DbMaintenanceTask) Run(ctx context.Context) error {
	db := t.app.DB.WithContext(ctx)

	statements := []string{"ANALYZE"}
	if t.app.Config().Database.Type == "sqlite" {
		statements = append(statements, "VACUUM")
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.String("msg", "success"))
	return nil
}
