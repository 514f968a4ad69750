package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	DB "Backend-Schoolhub/src/database"

	"github.com/redis/go-redis/v9"
)

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

// BlacklistToken stores a revoked access token until it would have expired anyway.
// Without Redis (development mode) it is a no-op.
func BlacklistToken(ctx context.Context, token string, expiresIn time.Duration) error {
	client := DB.RedisClient
	if client == nil {
		return nil
	}
	if expiresIn <= 0 {
		return nil
	}
	if err := client.Set(ctx, blacklistKey(token), "1", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %v", err)
	}
	return nil
}

// IsTokenBlacklisted reports whether token was revoked. Without Redis every token is allowed.
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	client := DB.RedisClient
	if client == nil {
		return false, nil
	}

	_, err := client.Get(ctx, blacklistKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check blacklist: %v", err)
	}
	return true, nil
}
