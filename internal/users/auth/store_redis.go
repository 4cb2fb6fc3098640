// Copyright (c) 2026 Critica. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/critica-app/critica/internal/platform/constants"
)

// RedisThrottleRepository implements ThrottleRepository using a Redis
// failure counter with a TTL.
type RedisThrottleRepository struct {
	client *redis.Client
}

// NewThrottleRepository creates a new Redis-backed ThrottleRepository.
func NewThrottleRepository(client *redis.Client) *RedisThrottleRepository {
	return &RedisThrottleRepository{client: client}
}

// FailureCount returns the current failure count for the username, zero when
// no failures are on record.
func (repository *RedisThrottleRepository) FailureCount(context context.Context, username string) (int64, error) {
	count, err := repository.client.Get(context, guessKey(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis_code_guess_read_failed: %w", err)
	}
	return count, nil
}

// RegisterFailure increments the failure counter, starting the expiry window
// on the first failure.
func (repository *RedisThrottleRepository) RegisterFailure(context context.Context, username string, window time.Duration) (int64, error) {
	key := guessKey(username)

	count, err := repository.client.Incr(context, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_code_guess_incr_failed: %w", err)
	}

	if count == 1 {
		if err := repository.client.Expire(context, key, window).Err(); err != nil {
			return count, fmt.Errorf("redis_code_guess_expire_failed: %w", err)
		}
	}

	return count, nil
}

// ClearFailures drops the failure counter for the username.
func (repository *RedisThrottleRepository) ClearFailures(context context.Context, username string) error {
	if err := repository.client.Del(context, guessKey(username)).Err(); err != nil {
		return fmt.Errorf("redis_code_guess_clear_failed: %w", err)
	}
	return nil
}

func guessKey(username string) string {
	return constants.RedisPrefixCodeGuess + username
}
