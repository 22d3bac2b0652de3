package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        2,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
		Timeout:           time.Second,
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(), "complete", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("status 529: overloaded")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryStopsOnNonRetriableError(t *testing.T) {
	calls := 0
	sentinel := errors.New("invalid request: 400")
	err := retryWithBackoff(context.Background(), fastRetryConfig(), "complete", func(context.Context) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(), "complete", func(context.Context) error {
		calls++
		return errors.New("rate limit exceeded")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retryWithBackoff(ctx, fastRetryConfig(), "complete", func(context.Context) error {
		return errors.New("connection reset")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetriableError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("429 too many requests"), true},
		{errors.New("rate limit hit"), true},
		{errors.New("internal server error"), true},
		{errors.New("503 service unavailable"), true},
		{errors.New("api overloaded"), true},
		{errors.New("connection refused"), true},
		{errors.New("network is unreachable"), true},
		{context.DeadlineExceeded, true},
		{errors.New("invalid api key"), false},
		{errors.New("404 not found"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isRetriableError(tc.err), "%v", tc.err)
	}
}
