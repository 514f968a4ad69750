package jobs

import (
	"fmt"
	"time"

	"Backend-Schoolhub/src/logger"

	"github.com/hibiken/asynq"
)

// NewServeMux routes maintenance task types to their handlers.
func NewServeMux(h *Handlers) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeArchiveEnded, h.HandleArchiveEnded)
	mux.HandleFunc(TypePurgeArchived, h.HandlePurgeArchived)
	return mux
}

func NewServer(opt asynq.RedisConnOpt, concurrency int) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 2
	}
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueMaintenance: 1},
		Logger:      logger.Log.Sugar(),
	})
}

// NewScheduler registers both maintenance tasks on cronspec. Purging is only scheduled when
// retention is positive.
func NewScheduler(opt asynq.RedisConnOpt, cronspec string, retention time.Duration) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   logger.Log.Sugar(),
	})

	if _, err := scheduler.Register(cronspec, NewArchiveEndedTask()); err != nil {
		return nil, fmt.Errorf("schedule %s on %q: %w", TypeArchiveEnded, cronspec, err)
	}
	if retention > 0 {
		task, err := NewPurgeArchivedTask(retention)
		if err != nil {
			return nil, err
		}
		if _, err := scheduler.Register(cronspec, task); err != nil {
			return nil, fmt.Errorf("schedule %s on %q: %w", TypePurgeArchived, cronspec, err)
		}
	}
	return scheduler, nil
}

// EnqueueMaintenance queues one archive run and, when retention is positive, one purge run,
// delayed by delay. Task ids carry a timestamp so repeated triggers do not collide.
func EnqueueMaintenance(client *asynq.Client, retention, delay time.Duration) ([]string, error) {
	stamp := time.Now().UTC().Format("20060102150405")
	tasks := []*asynq.Task{NewArchiveEndedTask()}
	if retention > 0 {
		purge, err := NewPurgeArchivedTask(retention)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, purge)
	}

	var ids []string
	for _, t := range tasks {
		info, err := client.Enqueue(t, asynq.ProcessIn(delay), asynq.TaskID(t.Type()+"-"+stamp))
		if err != nil {
			return ids, fmt.Errorf("enqueue %s: %w", t.Type(), err)
		}
		ids = append(ids, info.ID)
	}
	return ids, nil
}
