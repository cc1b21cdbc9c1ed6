// Package readiness polls external resources until a predicate holds or
// a time budget is exhausted. Fixed-interval polling is sufficient for
// the target services, whose startup latency is bounded; the interval
// and budget are configurable per wait so slow environments can tune
// them.
package readiness

import (
	"context"
	"fmt"
	"time"
)

// TimeoutError reports that a resource never became ready within its
// budget. It is distinct from a failed probe: probe errors are treated
// as "not ready yet", and only budget exhaustion is reported. The whole
// pipeline is safe to re-run after a timeout.
type TimeoutError struct {
	Description string
	MaxWait     time.Duration
	Attempts    int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s not ready after %v (%d checks)", e.Description, e.MaxWait, e.Attempts)
}

// Check describes what "ready" means for one resource.
type Check struct {
	// Description names the awaited resource in logs and errors.
	Description string

	// Interval is the fixed delay between probe evaluations.
	Interval time.Duration

	// MaxWait is the total time budget.
	MaxWait time.Duration

	// Probe evaluates the live state of the resource. It must be free
	// of side effects. An error means "not ready yet", never failure.
	Probe func(ctx context.Context) (bool, error)
}

// Poller evaluates readiness checks against an injectable clock.
type Poller struct {
	clock Clock
}

// NewPoller creates a poller using the real clock.
func NewPoller() *Poller {
	return &Poller{clock: RealClock{}}
}

// NewPollerWithClock creates a poller with a custom clock, for tests.
func NewPollerWithClock(clock Clock) *Poller {
	return &Poller{clock: clock}
}

// WaitFor probes immediately and then at fixed intervals until the
// probe reports ready, the budget is exhausted, or the context is
// cancelled. It returns nil on ready and a *TimeoutError once MaxWait
// elapses without success.
func (p *Poller) WaitFor(ctx context.Context, check Check) error {
	if check.Interval <= 0 || check.MaxWait <= 0 {
		return fmt.Errorf("readiness check %q needs a positive interval and max wait", check.Description)
	}

	start := p.clock.Now()
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		attempts++
		ready, err := check.Probe(ctx)
		if err == nil && ready {
			return nil
		}
		// A probe error is "not ready yet"; the resource may simply not
		// exist until its deployment settles.

		if err := p.clock.Sleep(ctx, check.Interval); err != nil {
			return err
		}
		if p.clock.Now().Sub(start) >= check.MaxWait {
			return &TimeoutError{
				Description: check.Description,
				MaxWait:     check.MaxWait,
				Attempts:    attempts,
			}
		}
	}
}

// Wait implements the provisioning.Waiter interface with per-call
// interval and budget.
func (p *Poller) Wait(ctx context.Context, description string, interval, maxWait time.Duration, probe func(context.Context) (bool, error)) error {
	return p.WaitFor(ctx, Check{
		Description: description,
		Interval:    interval,
		MaxWait:     maxWait,
		Probe:       probe,
	})
}
