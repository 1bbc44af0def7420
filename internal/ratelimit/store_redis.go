package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// allowScript counts atomically and stamps the window TTL on first hit.
var allowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// RedisStore implements Store on a shared Redis instance so all verifier
// replicas draw from the same budget.
type RedisStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

// Allow counts one request against key's fixed window.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	if limit <= 0 {
		return &Result{Allowed: true, Limit: limit, Remaining: limit}, nil
	}

	windowMillis := window.Milliseconds()
	if windowMillis <= 0 {
		windowMillis = 1000
	}

	raw, err := allowScript.Run(ctx, s.client, []string{"ratelimit:" + key}, windowMillis).Result()
	if err != nil {
		return nil, fmt.Errorf("ratelimit script: %w", err)
	}
	values, ok := raw.([]any)
	if !ok || len(values) < 2 {
		return nil, errors.New("unexpected ratelimit script response")
	}
	current, ok := values[0].(int64)
	if !ok {
		return nil, errors.New("invalid ratelimit counter response")
	}
	ttlMillis, ok := values[1].(int64)
	if !ok || ttlMillis < 0 {
		ttlMillis = windowMillis
	}

	result := &Result{
		Limit:   limit,
		ResetAt: s.now().Add(time.Duration(ttlMillis) * time.Millisecond),
	}
	if current > int64(limit) {
		return result, nil
	}

	result.Allowed = true
	result.Remaining = limit - int(current)
	return result, nil
}

// Reset clears the counter for a key.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, "ratelimit:"+key).Err()
}
