package quizzes

import (
	"context"
	"math/rand"
	"time"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// GroupCache keeps whole quiz group documents in Redis for the attempt path.
// Values are BSON so the answer key and ids round-trip exactly. A nil client disables caching.
type GroupCache struct {
	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
}

func NewGroupCache(client *redis.Client, ttl time.Duration) *GroupCache {
	return &GroupCache{client: client, ttl: ttl}
}

func groupCacheKey(id primitive.ObjectID) string {
	return "quiz:group:" + id.Hex()
}

// Get returns the cached group or loads it once per key across concurrent callers.
func (c *GroupCache) Get(ctx context.Context, id primitive.ObjectID, load func(context.Context) (*models.QuizGroup, error)) (*models.QuizGroup, error) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return load(ctx)
	}

	if g, ok := c.read(ctx, id); ok {
		return g, nil
	}

	v, err, _ := c.sf.Do(id.Hex(), func() (interface{}, error) {
		if g, ok := c.read(ctx, id); ok {
			return g, nil
		}
		g, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.write(ctx, g)
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.QuizGroup), nil
}

func (c *GroupCache) read(ctx context.Context, id primitive.ObjectID) (*models.QuizGroup, bool) {
	raw, err := c.client.Get(ctx, groupCacheKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var g models.QuizGroup
	if err := bson.Unmarshal(raw, &g); err != nil {
		logger.Log.Warn("drop undecodable cached quiz group", zap.String("groupId", id.Hex()), zap.Error(err))
		c.client.Del(ctx, groupCacheKey(id))
		return nil, false
	}
	return &g, true
}

func (c *GroupCache) write(ctx context.Context, g *models.QuizGroup) {
	raw, err := bson.Marshal(g)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, groupCacheKey(g.ID), raw, c.ttlWithJitter()).Err(); err != nil {
		logger.Log.Warn("cache quiz group", zap.String("groupId", g.ID.Hex()), zap.Error(err))
	}
}

// Invalidate drops the cached copy after a write.
func (c *GroupCache) Invalidate(ctx context.Context, id primitive.ObjectID) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, groupCacheKey(id)).Err(); err != nil {
		logger.Log.Warn("invalidate quiz group cache", zap.String("groupId", id.Hex()), zap.Error(err))
	}
}

// ttlWithJitter adds up to 10% to the ttl.
func (c *GroupCache) ttlWithJitter() time.Duration {
	jitter := time.Duration(rand.Int63n(int64(c.ttl)/10 + 1))
	return c.ttl + jitter
}
