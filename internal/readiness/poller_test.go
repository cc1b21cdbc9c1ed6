package readiness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakePoller() (*Poller, *FakeClock) {
	clock := NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewPollerWithClock(clock), clock
}

func TestWaitFor_ReadyImmediately(t *testing.T) {
	p, _ := fakePoller()
	attempts := 0

	err := p.WaitFor(context.Background(), Check{
		Description: "service",
		Interval:    time.Second,
		MaxWait:     time.Minute,
		Probe: func(context.Context) (bool, error) {
			attempts++
			return true, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWaitFor_ReadyAfterRetries(t *testing.T) {
	p, _ := fakePoller()
	attempts := 0

	err := p.WaitFor(context.Background(), Check{
		Description: "service",
		Interval:    time.Second,
		MaxWait:     time.Minute,
		Probe: func(context.Context) (bool, error) {
			attempts++
			return attempts >= 4, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, attempts)
}

func TestWaitFor_TimeoutAttemptCount(t *testing.T) {
	p, _ := fakePoller()
	attempts := 0

	// With a 1s interval and a 3s budget the probe is evaluated exactly
	// three times: at 0s, 1s and 2s elapsed.
	err := p.WaitFor(context.Background(), Check{
		Description: "service",
		Interval:    time.Second,
		MaxWait:     3 * time.Second,
		Probe: func(context.Context) (bool, error) {
			attempts++
			return false, nil
		},
	})
	require.Error(t, err)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, "service", timeoutErr.Description)
	assert.Equal(t, 3*time.Second, timeoutErr.MaxWait)
	assert.Equal(t, 3, timeoutErr.Attempts)
	assert.Equal(t, 3, attempts)
}

func TestWaitFor_ProbeErrorMeansNotReady(t *testing.T) {
	p, _ := fakePoller()
	attempts := 0

	err := p.WaitFor(context.Background(), Check{
		Description: "service",
		Interval:    time.Second,
		MaxWait:     time.Minute,
		Probe: func(context.Context) (bool, error) {
			attempts++
			if attempts < 3 {
				return false, errors.New("deployment not found")
			}
			return true, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWaitFor_ProbeErrorUntilTimeout(t *testing.T) {
	p, _ := fakePoller()

	err := p.WaitFor(context.Background(), Check{
		Description: "service",
		Interval:    time.Second,
		MaxWait:     2 * time.Second,
		Probe: func(context.Context) (bool, error) {
			return false, errors.New("connection refused")
		},
	})

	// Probe errors never surface; only the budget exhaustion does.
	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, 2, timeoutErr.Attempts)
}

func TestWaitFor_ContextCancelled(t *testing.T) {
	p, _ := fakePoller()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.WaitFor(ctx, Check{
		Description: "service",
		Interval:    time.Second,
		MaxWait:     time.Minute,
		Probe:       func(context.Context) (bool, error) { return false, nil },
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitFor_RejectsNonPositiveBudget(t *testing.T) {
	p, _ := fakePoller()

	err := p.WaitFor(context.Background(), Check{
		Description: "service",
		Interval:    0,
		MaxWait:     time.Minute,
		Probe:       func(context.Context) (bool, error) { return true, nil },
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive interval")
}

func TestWait_AdaptsToWaiterSignature(t *testing.T) {
	p, _ := fakePoller()

	err := p.Wait(context.Background(), "service", time.Second, time.Minute,
		func(context.Context) (bool, error) { return true, nil })
	assert.NoError(t, err)
}
