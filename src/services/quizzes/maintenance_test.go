package quizzes

import (
	"context"
	"testing"
	"time"

	"Backend-Schoolhub/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenance(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService("")

	longAgo := fixedNow.Add(-40 * 24 * time.Hour)
	recently := fixedNow.Add(-time.Hour)
	later := fixedNow.Add(time.Hour)

	stale := seedGroup(t, store, schoolA, func(g *models.QuizGroup) { g.EndTime = &longAgo })
	ended := seedGroup(t, store, schoolA, func(g *models.QuizGroup) { g.EndTime = &recently })
	running := seedGroup(t, store, schoolA, func(g *models.QuizGroup) { g.EndTime = &later })
	draft := seedGroup(t, store, schoolA, func(g *models.QuizGroup) {
		g.Status = models.QuizStatusDraft
		g.EndTime = &longAgo
	})

	_, err := svc.Submit(ctx, studentIn(schoolA, nil, nil), running.ID.Hex(), nil)
	require.NoError(t, err)
	seedSubmission(t, store, stale, "Anong", nil, 5, longAgo.Add(-time.Hour))
	seedSubmission(t, store, stale, "Boon", nil, 6, longAgo.Add(-time.Hour))

	rep, err := svc.RunMaintenance(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rep.Archived)
	assert.Equal(t, int64(1), rep.PurgedGroups)
	assert.Equal(t, int64(2), rep.PurgedSubmissions)

	assert.NotContains(t, store.groups, stale.ID)
	assert.Equal(t, models.QuizStatusArchived, store.groups[ended.ID].Status)
	assert.Equal(t, models.QuizStatusPublished, store.groups[running.ID].Status)
	assert.Equal(t, models.QuizStatusDraft, store.groups[draft.ID].Status)

	t.Run("second run changes nothing", func(t *testing.T) {
		rep, err := svc.RunMaintenance(ctx, 30*24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, MaintenanceReport{}, rep)
		assert.Len(t, store.groups, 3)
		assert.Len(t, store.submissions, 1)
	})

	t.Run("zero retention disables purging", func(t *testing.T) {
		rep, err := svc.PurgeArchived(ctx, 0)
		require.NoError(t, err)
		assert.Zero(t, rep.PurgedGroups)
		assert.Contains(t, store.groups, ended.ID)
	})
}
