package task

import (
	"context"
	"time"

	"github.com/planhub/collab-event-service/internal/app"

	"go.uber.org/zap"
)

// TokenCleanupTask purges blacklist rows whose tokens already expired.
type TokenCleanupTask struct {
	app *app.App
}

// NewTokenCleanupTask creates the blacklist purge task.
func NewTokenCleanupTask(appContainer *app.App) Task {
	return &TokenCleanupTask{app: appContainer}
}

func (t *TokenCleanupTask) Name() string {
	return "TokenCleanup"
}

func (t *TokenCleanupTask) LoopInterval() time.Duration {
	return t.app.Config().GetTokenCleanupInterval()
}

func (t *TokenCleanupTask) IsStartupRun() bool {
	return true
}

func (t *TokenCleanupTask) Run(ctx context.Context) error {
	purged, err := t.app.TokenRepo.PurgeExpired(ctx, time.Now().Unix())
	if err != nil {
		return err
	}

	if purged > 0 {
		t.app.Logger().Info("task log",
			zap.String("task", t.Name()),
			zap.Int64("purged", purged))
	}
	return nil
}
