package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/services/quizzes"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Maintainer is the part of the quiz service the maintenance tasks drive.
type Maintainer interface {
	ArchiveEnded(ctx context.Context) (int64, error)
	PurgeArchived(ctx context.Context, retention time.Duration) (quizzes.MaintenanceReport, error)
}

type Handlers struct {
	svc Maintainer
}

func NewHandlers(svc Maintainer) *Handlers {
	return &Handlers{svc: svc}
}

// HandleArchiveEnded archives published quizzes whose end time has passed. Running it twice
// archives nothing the second time.
func (h *Handlers) HandleArchiveEnded(ctx context.Context, t *asynq.Task) error {
	if _, err := h.svc.ArchiveEnded(ctx); err != nil {
		logger.Log.Error("❌ archive ended quizzes", zap.Error(err))
		return err
	}
	return nil
}

// HandlePurgeArchived deletes archived quizzes past the retention together with their submissions.
func (h *Handlers) HandlePurgeArchived(ctx context.Context, t *asynq.Task) error {
	var payload PurgeArchivedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	retention, err := payload.RetentionDuration()
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if retention <= 0 {
		logger.Log.Debug("purge skipped, retention disabled")
		return nil
	}

	// partial failures are retried; groups already purged no longer match
	if _, err := h.svc.PurgeArchived(ctx, retention); err != nil {
		logger.Log.Error("❌ purge archived quizzes", zap.Error(err))
		return err
	}
	return nil
}
