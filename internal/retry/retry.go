// Package retry holds the shared retry policy used by the search client and
// the extraction engine, so backoff rules live in one value object instead of
// ad hoc sleep loops.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/sharad-mishra/universal-price-tool/internal/model"
)

// Class buckets upstream failures by how they should be retried.
type Class int

const (
	// ClassFatal failures are never retried.
	ClassFatal Class = iota
	// ClassTransient covers 5xx, timeouts, and network errors.
	ClassTransient
	// ClassRateLimit covers provider-enforced 429 responses. Rate limits are
	// minimum backoffs, not jitter, so their wait is much longer.
	ClassRateLimit
)

// Policy is the retry budget plus the per-class backoff table. A class absent
// from Backoff is not retryable under the policy.
type Policy struct {
	MaxAttempts int
	Backoff     map[Class]time.Duration
}

// ExtractionPolicy retries only rate-limit and transient-unavailable failures,
// with rate limits waiting tens of seconds.
func ExtractionPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Backoff: map[Class]time.Duration{
			ClassRateLimit: 42 * time.Second,
			ClassTransient: time.Second,
		},
	}
}

// SearchPolicy retries every failure class immediately, up to the budget.
func SearchPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Backoff: map[Class]time.Duration{
			ClassRateLimit: 0,
			ClassTransient: 0,
			ClassFatal:     0,
		},
	}
}

// BackoffFor returns the wait before the next attempt and whether the class is
// retryable at all.
func (p Policy) BackoffFor(c Class) (time.Duration, bool) {
	d, ok := p.Backoff[c]
	return d, ok
}

// Wait sleeps for the class backoff, returning early if ctx is cancelled.
func (p Policy) Wait(ctx context.Context, c Class) error {
	d, ok := p.Backoff[c]
	if !ok || d == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Classify maps an error onto a retry class using the model sentinels.
func Classify(err error) Class {
	switch {
	case errors.Is(err, model.ErrRateLimit):
		return ClassRateLimit
	case errors.Is(err, model.ErrServiceUnavailable),
		errors.Is(err, model.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return ClassTransient
	default:
		return ClassFatal
	}
}
