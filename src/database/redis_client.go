package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisClient stays nil when Redis is not configured; callers treat nil as "feature off".
var RedisClient *redis.Client

var redisOpt struct {
	addr     string
	password string
	db       int
}

// InitRedis connects to Redis when addr is set.
func InitRedis(ctx context.Context, addr, password string, db int) error {
	if addr == "" {
		return nil
	}
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("ping redis: %w", err)
	}
	RedisClient = c
	redisOpt.addr, redisOpt.password, redisOpt.db = addr, password, db
	return nil
}
