// Package retry provides a generic bounded-backoff wrapper for unreliable
// external calls. Only errors classified as transient (network, timeout,
// rate-limit, upstream 5xx) are retried; validation and programming errors
// surface immediately.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"time"
)

// Policy configures the retry behavior for one operation.
type Policy struct {
	// MaxAttempts is the total number of invocations, including the first.
	MaxAttempts int
	// BaseDelay is the sleep before the first retry; it doubles each attempt.
	BaseDelay time.Duration
	// MaxDelay caps the exponential backoff.
	MaxDelay time.Duration
	// JitterFrac applies +/- jitter to backoff sleeps (0.2 = +/-20%) so many
	// jobs retrying at once do not synchronize.
	JitterFrac float64
}

// DefaultPolicy returns the standard adapter retry policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		JitterFrac:  0.2,
	}
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = 500 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 10 * time.Second
	}
	return p
}

// TransientError marks an error as a transient failure eligible for retry.
type TransientError struct {
	Cause error
}

func (e *TransientError) Error() string {
	return "transient: " + e.Cause.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

// Transient wraps err so IsTransient reports true for it. A nil err returns
// nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Cause: err}
}

// IsTransient reports whether err represents a transient failure: an explicit
// TransientError anywhere in the chain, a network timeout, or a temporary DNS
// failure. Context cancellation is never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var te *TransientError
	if errors.As(err, &te) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTemporary {
		return true
	}
	return false
}

// Do invokes op until it succeeds, fails non-transiently, or MaxAttempts are
// exhausted, sleeping with capped exponential backoff between attempts. The
// last error is returned unchanged so callers can inspect it.
func Do[T any](ctx context.Context, policy Policy, op func(ctx context.Context) (T, error)) (T, error) {
	policy = policy.withDefaults()

	var zero T
	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsTransient(err) || attempt == policy.MaxAttempts-1 {
			return zero, err
		}

		sleep := backoff(policy, attempt)
		t := time.NewTimer(sleep)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return zero, ctx.Err()
		}
	}
	return zero, lastErr
}

// backoff computes the sleep before retrying after the given zero-based
// attempt: BaseDelay doubled per attempt, capped at MaxDelay, with jitter.
func backoff(policy Policy, attempt int) time.Duration {
	sleep := policy.BaseDelay << uint(attempt)
	if sleep > policy.MaxDelay || sleep <= 0 {
		sleep = policy.MaxDelay
	}
	if policy.JitterFrac > 0 {
		delta := (rand.Float64()*2 - 1) * policy.JitterFrac * float64(sleep)
		sleep = time.Duration(float64(sleep) + delta)
		if sleep < 0 {
			sleep = 0
		}
	}
	return sleep
}
