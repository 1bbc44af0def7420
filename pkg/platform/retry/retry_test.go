package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntilFirstAttemptSucceeds(t *testing.T) {
	calls := 0
	err := Until(context.Background(), Config{Timeout: time.Second, Interval: time.Millisecond}, func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestUntilRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Until(context.Background(), Config{Timeout: time.Second, Interval: time.Millisecond}, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestUntilTimesOutWithLastError(t *testing.T) {
	sentinel := errors.New("still down")
	err := Until(context.Background(), Config{Timeout: 20 * time.Millisecond, Interval: 5 * time.Millisecond}, func(context.Context) error {
		return sentinel
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestUntilHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Until(ctx, Config{Timeout: time.Second, Interval: time.Millisecond}, func(context.Context) error {
		return errors.New("never called after cancel")
	})

	assert.ErrorIs(t, err, context.Canceled)
}
