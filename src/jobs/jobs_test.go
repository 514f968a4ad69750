package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"Backend-Schoolhub/src/services/quizzes"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMaintainer struct {
	archiveCalls int
	retentions   []time.Duration
	err          error
}

func (f *fakeMaintainer) ArchiveEnded(context.Context) (int64, error) {
	f.archiveCalls++
	return 2, f.err
}

func (f *fakeMaintainer) PurgeArchived(_ context.Context, retention time.Duration) (quizzes.MaintenanceReport, error) {
	f.retentions = append(f.retentions, retention)
	return quizzes.MaintenanceReport{PurgedGroups: 1, PurgedSubmissions: 4}, f.err
}

func TestMuxRoutesMaintenanceTasks(t *testing.T) {
	m := &fakeMaintainer{}
	mux := NewServeMux(NewHandlers(m))

	require.NoError(t, mux.ProcessTask(context.Background(), NewArchiveEndedTask()))
	assert.Equal(t, 1, m.archiveCalls)

	purge, err := NewPurgeArchivedTask(72 * time.Hour)
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(context.Background(), purge))
	assert.Equal(t, []time.Duration{72 * time.Hour}, m.retentions)
}

func TestPurgeWithoutRetentionIsNoop(t *testing.T) {
	m := &fakeMaintainer{}
	h := NewHandlers(m)

	task, err := NewPurgeArchivedTask(0)
	require.NoError(t, err)
	require.NoError(t, h.HandlePurgeArchived(context.Background(), task))
	assert.Empty(t, m.retentions)
}

func TestPurgeRejectsBadPayloadWithoutRetry(t *testing.T) {
	h := NewHandlers(&fakeMaintainer{})

	err := h.HandlePurgeArchived(context.Background(), asynq.NewTask(TypePurgeArchived, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	raw, _ := json.Marshal(PurgeArchivedPayload{Retention: "soon"})
	err = h.HandlePurgeArchived(context.Background(), asynq.NewTask(TypePurgeArchived, raw))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandlerErrorsAreRetried(t *testing.T) {
	boom := errors.New("mongo down")
	h := NewHandlers(&fakeMaintainer{err: boom})

	err := h.HandleArchiveEnded(context.Background(), NewArchiveEndedTask())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestPayloadRetention(t *testing.T) {
	cases := map[string]time.Duration{"": 0, "0": 0, "720h0m0s": 720 * time.Hour, "90m": 90 * time.Minute}
	for raw, want := range cases {
		got, err := PurgeArchivedPayload{Retention: raw}.RetentionDuration()
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}
