package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContextWithTestDeadlineBuffer_UsesFallback(t *testing.T) {
	fallback := 200 * time.Millisecond
	ctx, cancel := ContextWithTestDeadlineBuffer(t, fallback, 50*time.Millisecond)
	defer cancel()

	deadline, ok := ctx.Deadline()
	assert.True(t, ok, "context should have deadline")

	// Never later than the fallback, whatever the test deadline.
	remaining := time.Until(deadline)
	assert.Greater(t, remaining.Seconds(), 0.0)
	assert.LessOrEqual(t, remaining, fallback)
}

func TestRunContext(t *testing.T) {
	ctx, cancel := RunContext(t)
	defer cancel()

	deadline, ok := ctx.Deadline()
	assert.True(t, ok, "context should have deadline")
	assert.LessOrEqual(t, time.Until(deadline), DefaultRunTimeout)
}

func TestShortOperationContext(t *testing.T) {
	ctx, cancel := ShortOperationContext(t)
	defer cancel()

	deadline, ok := ctx.Deadline()
	assert.True(t, ok, "context should have deadline")
	assert.Greater(t, time.Until(deadline).Seconds(), 0.0)
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := ContextWithTestDeadline(t, time.Minute)

	select {
	case <-ctx.Done():
		t.Fatal("context should not be done before cancel")
	default:
	}

	cancel()

	select {
	case <-ctx.Done():
	default:
		t.Fatal("context should be done after cancel")
	}
}
