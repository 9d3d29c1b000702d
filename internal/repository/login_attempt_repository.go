package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptPrefix = "park-api:login-failures:"

// recordFailureScript increments the counter and sets its expiry in one step.
// A counter found without a TTL gets one as well.
var recordFailureScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 or redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// LoginAttemptRepository keeps failed login counters in Redis. Each counter
// expires one window after the first failure.
type LoginAttemptRepository struct {
	client *redis.Client
}

// NewLoginAttemptRepository constructs repository.
func NewLoginAttemptRepository(client *redis.Client) *LoginAttemptRepository {
	return &LoginAttemptRepository{client: client}
}

func (r *LoginAttemptRepository) Failures(ctx context.Context, key string) (int64, time.Duration, error) {
	pipe := r.client.Pipeline()
	get := pipe.Get(ctx, loginAttemptPrefix+key)
	ttl := pipe.PTTL(ctx, loginAttemptPrefix+key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return 0, 0, err
	}

	count, err := get.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return count, ttl.Val(), nil
}

func (r *LoginAttemptRepository) RecordFailure(ctx context.Context, key string, window time.Duration) (int64, error) {
	return recordFailureScript.Run(ctx, r.client, []string{loginAttemptPrefix + key}, window.Milliseconds()).Int64()
}

func (r *LoginAttemptRepository) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, loginAttemptPrefix+key).Err()
}
