//go:build integration

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"wmoracle/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
	ctx   context.Context
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = NewRedisStore(s.redis.Client)
	s.ctx = context.Background()
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func (s *RedisStoreSuite) TestAllowCountsAcrossCalls() {
	key := "ip:" + uuid.NewString()

	for i := range 3 {
		result, err := s.store.Allow(s.ctx, key, 3, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(3-(i+1), result.Remaining)
	}

	result, err := s.store.Allow(s.ctx, key, 3, time.Minute)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.False(result.ResetAt.IsZero())
}

func (s *RedisStoreSuite) TestWindowExpiryResetsBudget() {
	key := "ip:" + uuid.NewString()

	result, err := s.store.Allow(s.ctx, key, 1, 200*time.Millisecond)
	s.Require().NoError(err)
	s.True(result.Allowed)

	result, err = s.store.Allow(s.ctx, key, 1, 200*time.Millisecond)
	s.Require().NoError(err)
	s.False(result.Allowed)

	time.Sleep(300 * time.Millisecond)

	result, err = s.store.Allow(s.ctx, key, 1, 200*time.Millisecond)
	s.Require().NoError(err)
	s.True(result.Allowed)
}

func (s *RedisStoreSuite) TestKeysAreIndependent() {
	a := "ip:" + uuid.NewString()
	b := "ip:" + uuid.NewString()

	_, err := s.store.Allow(s.ctx, a, 1, time.Minute)
	s.Require().NoError(err)

	result, err := s.store.Allow(s.ctx, b, 1, time.Minute)
	s.Require().NoError(err)
	s.True(result.Allowed)
}

func (s *RedisStoreSuite) TestReset() {
	key := "ip:" + uuid.NewString()

	_, err := s.store.Allow(s.ctx, key, 1, time.Minute)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Reset(s.ctx, key))

	result, err := s.store.Allow(s.ctx, key, 1, time.Minute)
	s.Require().NoError(err)
	s.True(result.Allowed)
}
