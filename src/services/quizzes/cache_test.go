package quizzes

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"Backend-Schoolhub/src/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*GroupCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewGroupCache(client, ttl), mr
}

func TestGroupCacheDisabledPassesThrough(t *testing.T) {
	var calls int32
	load := func(context.Context) (*models.QuizGroup, error) {
		atomic.AddInt32(&calls, 1)
		return &models.QuizGroup{Title: "x"}, nil
	}

	var nilCache *GroupCache
	for _, c := range []*GroupCache{nilCache, NewGroupCache(nil, time.Minute)} {
		_, err := c.Get(context.Background(), primitive.NewObjectID(), load)
		require.NoError(t, err)
		_, err = c.Get(context.Background(), primitive.NewObjectID(), load)
		require.NoError(t, err)
		c.Invalidate(context.Background(), primitive.NewObjectID())
	}
	assert.Equal(t, int32(4), calls)
}

func TestGroupCacheStoresAndInvalidates(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, time.Minute)

	questions, err := BuildQuestions(twoQuestionInputs())
	require.NoError(t, err)
	group := &models.QuizGroup{ID: primitive.NewObjectID(), Title: "Cached", SchoolID: schoolA, Questions: questions, Status: models.QuizStatusPublished}

	var calls int32
	load := func(context.Context) (*models.QuizGroup, error) {
		atomic.AddInt32(&calls, 1)
		return group, nil
	}

	got, err := cache.Get(ctx, group.ID, load)
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.Title)
	assert.True(t, mr.Exists(groupCacheKey(group.ID)))

	ttl := mr.TTL(groupCacheKey(group.ID))
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.LessOrEqual(t, ttl, 66*time.Second)

	got, err = cache.Get(ctx, group.ID, load)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, questions[0].ID, got.Questions[0].ID)
	require.NotNil(t, got.Questions[0].CorrectOptionIndex)
	assert.Equal(t, 1, *got.Questions[0].CorrectOptionIndex)

	cache.Invalidate(ctx, group.ID)
	assert.False(t, mr.Exists(groupCacheKey(group.ID)))
	_, err = cache.Get(ctx, group.ID, load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls)

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists(groupCacheKey(group.ID)))
}

func TestGroupCacheDropsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, time.Minute)
	id := primitive.NewObjectID()
	require.NoError(t, mr.Set(groupCacheKey(id), "not bson"))

	got, err := cache.Get(ctx, id, func(context.Context) (*models.QuizGroup, error) {
		return &models.QuizGroup{ID: id, Title: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Title)
}

func TestGroupCacheDoesNotStoreMisses(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, time.Minute)
	id := primitive.NewObjectID()

	_, err := cache.Get(ctx, id, func(context.Context) (*models.QuizGroup, error) {
		return nil, ErrGroupNotFound
	})
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.False(t, mr.Exists(groupCacheKey(id)))
}

func TestServiceInvalidatesCacheOnUpdate(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, time.Minute)
	store := newMemStore()
	svc := NewService(store, new(mockDirectory), cache, nil, "")
	svc.SetClock(func() time.Time { return fixedNow })
	g := seedGroup(t, store, schoolA, nil)

	_, err := svc.GetGroupForAttempt(ctx, studentIn(schoolA, nil, nil), g.ID.Hex())
	require.NoError(t, err)
	require.True(t, mr.Exists(groupCacheKey(g.ID)))

	status := models.QuizStatusDraft
	_, err = svc.Update(ctx, teacherOf(schoolA), g.ID.Hex(), GroupUpdate{Status: &status})
	require.NoError(t, err)
	assert.False(t, mr.Exists(groupCacheKey(g.ID)))

	_, err = svc.Submit(ctx, studentIn(schoolA, nil, nil), g.ID.Hex(), nil)
	assert.Error(t, err)
}
