package cli

import (
	"context"
	"errors"

	"Backend-Schoolhub/src/database"
	"Backend-Schoolhub/src/jobs"
	"Backend-Schoolhub/src/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errRedisRequired = errors.New("REDIS_URI is required for the worker")

func newWorkerCmd(configPath *string) *cobra.Command {
	var concurrency int
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Process maintenance tasks and run the maintenance schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(cmd.Context(), *configPath, concurrency)
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 2, "number of concurrent task workers")
	return cmd
}

func runWorker(ctx context.Context, path string, concurrency int) error {
	cfg, err := bootstrap(ctx, path)
	if err != nil {
		return err
	}
	defer shutdown()

	if database.RedisClient == nil {
		return errRedisRequired
	}
	svc, err := newQuizService(ctx, cfg)
	if err != nil {
		return err
	}

	opt := database.AsynqRedisOpt()
	srv := jobs.NewServer(opt, concurrency)
	if err := srv.Start(jobs.NewServeMux(jobs.NewHandlers(svc))); err != nil {
		return err
	}
	defer srv.Shutdown()

	scheduler, err := jobs.NewScheduler(opt, cfg.Quiz.MaintenanceCron, cfg.ArchiveRetention())
	if err != nil {
		return err
	}
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Shutdown()

	logger.Log.Info("✅ worker started",
		zap.String("cron", cfg.Quiz.MaintenanceCron),
		zap.Duration("retention", cfg.ArchiveRetention()),
	)

	<-ctx.Done()
	logger.Log.Info("shutting down worker...")
	return nil
}
