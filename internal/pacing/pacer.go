// Package pacing holds a loop to a target iteration rate.
package pacing

import (
	"context"
	"fmt"
	"time"
)

// Pacer computes and waits out the remainder of a fixed frame interval.
// Slow iterations are not compensated later: the wait is simply skipped,
// so pacing never drifts into a burst.
type Pacer struct {
	interval time.Duration
	nowFunc  func() time.Time                  // injectable clock for testing
	timer    func(d time.Duration) *time.Timer // injectable timer for testing
}

// NewPacer creates a pacer targeting fps iterations per second.
func NewPacer(fps float64) (*Pacer, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %v", fps)
	}
	return &Pacer{
		interval: time.Duration(float64(time.Second) / fps),
		nowFunc:  time.Now,
		timer:    time.NewTimer,
	}, nil
}

// Interval returns the target duration of one iteration.
func (p *Pacer) Interval() time.Duration { return p.interval }

// Now returns the pacer's notion of the current time.
func (p *Pacer) Now() time.Time { return p.nowFunc() }

// Remaining returns max(0, interval - elapsed since start).
func (p *Pacer) Remaining(start time.Time) time.Duration {
	left := p.interval - p.nowFunc().Sub(start)
	if left < 0 {
		return 0
	}
	return left
}

// Wait blocks until the frame that began at start has used its full
// interval, or ctx is done. It returns ctx.Err() on cancellation.
func (p *Pacer) Wait(ctx context.Context, start time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	left := p.Remaining(start)
	if left == 0 {
		return nil
	}

	t := p.timer(left)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
