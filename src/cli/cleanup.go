package cli

import (
	"context"
	"fmt"

	"Backend-Schoolhub/src/database"
	"Backend-Schoolhub/src/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCleanupCmd(configPath *string) *cobra.Command {
	var retention string
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Archive ended quizzes and purge expired ones once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCleanup(cmd.Context(), cmd, *configPath, retention)
		},
	}
	cmd.Flags().StringVar(&retention, "retention", "", "override QUIZ_ARCHIVE_RETENTION (e.g. 720h)")
	return cmd
}

func runCleanup(ctx context.Context, cmd *cobra.Command, path, retentionFlag string) error {
	cfg, err := bootstrap(ctx, path)
	if err != nil {
		return err
	}
	defer shutdown()

	if retentionFlag != "" {
		cfg.Quiz.ArchiveRetention = retentionFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	svc, err := newQuizService(ctx, cfg)
	if err != nil {
		return err
	}
	report, err := svc.RunMaintenance(ctx, cfg.ArchiveRetention())
	logger.Log.Info("cleanup finished",
		zap.Int64("archived", report.Archived),
		zap.Int64("purgedGroups", report.PurgedGroups),
		zap.Int64("purgedSubmissions", report.PurgedSubmissions),
		zap.Error(err),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "archived=%d purgedGroups=%d purgedSubmissions=%d\n",
		report.Archived, report.PurgedGroups, report.PurgedSubmissions)
	return err
}

func newIndexesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := bootstrap(ctx, *configPath); err != nil {
				return err
			}
			defer shutdown()
			if err := database.EnsureIndexes(ctx, database.DB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "indexes ensured")
			return nil
		},
	}
}
