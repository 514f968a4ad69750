package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// QueueMaintenance keeps housekeeping apart from anything latency sensitive.
const QueueMaintenance = "maintenance"

const (
	TypeArchiveEnded  = "quiz:archive-ended"
	TypePurgeArchived = "quiz:purge-archived"
)

// PurgeArchivedPayload carries the retention so a scheduled task keeps the value it was
// registered with.
type PurgeArchivedPayload struct {
	Retention string `json:"retention"`
}

func (p PurgeArchivedPayload) RetentionDuration() (time.Duration, error) {
	if p.Retention == "" || p.Retention == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Retention)
	if err != nil {
		return 0, fmt.Errorf("invalid retention %q: %w", p.Retention, err)
	}
	return d, nil
}

func NewArchiveEndedTask() *asynq.Task {
	return asynq.NewTask(TypeArchiveEnded, nil, taskOptions()...)
}

func NewPurgeArchivedTask(retention time.Duration) (*asynq.Task, error) {
	payload, err := json.Marshal(PurgeArchivedPayload{Retention: retention.String()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePurgeArchived, payload, taskOptions()...), nil
}

func taskOptions() []asynq.Option {
	return []asynq.Option{
		asynq.Queue(QueueMaintenance),
		asynq.MaxRetry(3),
		asynq.Timeout(5 * time.Minute),
	}
}
