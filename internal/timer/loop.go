package timer

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrLoopStopped is returned by Post/Do once Run has returned.
var ErrLoopStopped = errors.New("timer loop stopped")

// Loop drives a Scheduler from the monotonic clock and serializes work posted
// from other goroutines (network handlers, admin commands) with timer callbacks.
// Everything touching entities runs on the Run goroutine.
type Loop struct {
	sched    *Scheduler
	interval time.Duration
	posts    chan func()
	done     chan struct{}
}

// NewLoop creates a loop advancing sched every interval.
func NewLoop(sched *Scheduler, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	return &Loop{
		sched:    sched,
		interval: interval,
		posts:    make(chan func(), 1024),
		done:     make(chan struct{}),
	}
}

// Scheduler returns the driven scheduler. Use it only from the loop goroutine.
func (l *Loop) Scheduler() *Scheduler {
	return l.sched
}

// Post queues fn to run on the loop goroutine. Blocks while the queue is full.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.posts <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	}
}

// Run advances the scheduler until ctx is cancelled (blocks).
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	base := l.sched.Now()
	started := time.Now()

	slog.Info("timer loop started", "interval", l.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("timer loop stopping", "pending", l.sched.Pending())
			return ctx.Err()

		case fn := <-l.posts:
			fn()

		case <-ticker.C:
			now := base + time.Since(started).Milliseconds()
			if n := l.sched.Advance(now); n > 0 {
				slog.Debug("timers fired", "count", n, "tick", now)
			}
		}
	}
}
