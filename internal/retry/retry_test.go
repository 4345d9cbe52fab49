package retry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sharad-mishra/universal-price-tool/internal/model"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, ClassRateLimit, Classify(fmt.Errorf("gemini: %w", model.ErrRateLimit)))
	assert.Equal(t, ClassTransient, Classify(model.ErrServiceUnavailable))
	assert.Equal(t, ClassTransient, Classify(model.ErrTimeout))
	assert.Equal(t, ClassTransient, Classify(context.DeadlineExceeded))
	assert.Equal(t, ClassFatal, Classify(model.ErrInvalidRequest))
	assert.Equal(t, ClassFatal, Classify(fmt.Errorf("boom")))
}

func TestExtractionPolicyBackoff(t *testing.T) {
	p := ExtractionPolicy()
	assert.Equal(t, 3, p.MaxAttempts)

	d, ok := p.BackoffFor(ClassRateLimit)
	assert.True(t, ok)
	assert.Equal(t, 42*time.Second, d)

	d, ok = p.BackoffFor(ClassTransient)
	assert.True(t, ok)
	assert.Equal(t, time.Second, d)

	_, ok = p.BackoffFor(ClassFatal)
	assert.False(t, ok)
}

func TestSearchPolicyRetriesEverything(t *testing.T) {
	p := SearchPolicy()
	for _, c := range []Class{ClassFatal, ClassTransient, ClassRateLimit} {
		d, ok := p.BackoffFor(c)
		assert.True(t, ok)
		assert.Zero(t, d)
	}
}

func TestWaitCancellation(t *testing.T) {
	p := Policy{MaxAttempts: 2, Backoff: map[Class]time.Duration{ClassTransient: time.Minute}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Wait(ctx, ClassTransient)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitZeroBackoffReturnsImmediately(t *testing.T) {
	p := SearchPolicy()
	start := time.Now()
	assert.NoError(t, p.Wait(context.Background(), ClassTransient))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
