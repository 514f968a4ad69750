package quizzes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Backend-Schoolhub/src/logger"

	"go.uber.org/zap"
)

// MaintenanceReport summarises one maintenance run.
type MaintenanceReport struct {
	Archived          int64 `json:"archived"`
	PurgedGroups      int64 `json:"purgedGroups"`
	PurgedSubmissions int64 `json:"purgedSubmissions"`
}

// ArchiveEnded moves published groups past their end time to archived.
// Running it twice is harmless since archived groups no longer match.
func (s *Service) ArchiveEnded(ctx context.Context) (int64, error) {
	n, err := s.store.ArchiveEnded(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("archive ended quizzes: %w", err)
	}
	if n > 0 {
		logger.Log.Info("archived ended quizzes", zap.Int64("count", n))
	}
	return n, nil
}

// PurgeArchived deletes archived groups that ended more than retention ago, with
// their submissions. A non-positive retention disables purging.
func (s *Service) PurgeArchived(ctx context.Context, retention time.Duration) (MaintenanceReport, error) {
	var rep MaintenanceReport
	if retention <= 0 {
		return rep, nil
	}
	ids, err := s.store.ArchivedEndedBefore(ctx, s.now().Add(-retention))
	if err != nil {
		return rep, fmt.Errorf("find expired quizzes: %w", err)
	}

	var errs []error
	for _, id := range ids {
		group, err := s.store.FindGroup(ctx, id)
		if err != nil {
			if errors.Is(err, ErrGroupNotFound) {
				continue
			}
			errs = append(errs, err)
			continue
		}
		res, err := s.purge(ctx, group)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rep.PurgedGroups += res.DeletedGroups
		rep.PurgedSubmissions += res.DeletedSubmissions
	}

	if rep.PurgedGroups > 0 {
		logger.Log.Info("purged archived quizzes",
			zap.Int64("groups", rep.PurgedGroups),
			zap.Int64("submissions", rep.PurgedSubmissions),
		)
	}
	return rep, errors.Join(errs...)
}

// RunMaintenance archives then purges, as the cleanup command does.
func (s *Service) RunMaintenance(ctx context.Context, retention time.Duration) (MaintenanceReport, error) {
	archived, err := s.ArchiveEnded(ctx)
	if err != nil {
		return MaintenanceReport{}, err
	}
	rep, err := s.PurgeArchived(ctx, retention)
	rep.Archived = archived
	return rep, err
}
