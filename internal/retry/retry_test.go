package retry

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), fastPolicy(), func(_ context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesTransientErrors(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), fastPolicy(), func(_ context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, Transient(errors.New("upstream 503"))
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, calls)
}

func TestDoStopsAfterMaxAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastPolicy(), func(_ context.Context) (int, error) {
		calls++
		return 0, Transient(errors.New("always down"))
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.True(t, IsTransient(err))
}

func TestDoDoesNotRetryPermanentErrors(t *testing.T) {
	calls := 0
	permanent := errors.New("invalid request")
	_, err := Do(context.Background(), fastPolicy(), func(_ context.Context) (int, error) {
		calls++
		return 0, permanent
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, permanent)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Do(ctx, fastPolicy(), func(_ context.Context) (int, error) {
		calls++
		return 0, nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"explicit transient", Transient(errors.New("boom")), true},
		{"wrapped transient", errors.Join(errors.New("outer"), Transient(errors.New("inner"))), true},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"dns temporary", &net.DNSError{IsTemporary: true}, true},
		{"dns permanent", &net.DNSError{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestTransientNilPassthrough(t *testing.T) {
	assert.NoError(t, Transient(nil))
}

func TestBackoffCappedAtMaxDelay(t *testing.T) {
	policy := Policy{BaseDelay: time.Second, MaxDelay: 2 * time.Second}

	assert.Equal(t, time.Second, backoff(policy, 0))
	assert.Equal(t, 2*time.Second, backoff(policy, 1))
	assert.Equal(t, 2*time.Second, backoff(policy, 10))
}

func TestBackoffJitterStaysInBounds(t *testing.T) {
	policy := Policy{BaseDelay: time.Second, MaxDelay: 10 * time.Second, JitterFrac: 0.2}

	for i := 0; i < 100; i++ {
		sleep := backoff(policy, 0)
		assert.GreaterOrEqual(t, sleep, 800*time.Millisecond)
		assert.LessOrEqual(t, sleep, 1200*time.Millisecond)
	}
}
