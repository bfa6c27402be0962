package frame

import (
	"context"
	"errors"
	"time"
)

// ErrRunnerStopped is returned when posting to a runner that has exited
var ErrRunnerStopped = errors.New(ErrMsgRunnerStopped)

// Runner drives a Loop from wall-clock time on a single goroutine. Commands
// posted with Do or Call execute on that goroutine between frames, which is the
// only way code outside the loop may touch loop-owned state.
type Runner struct {
	loop     *Loop
	interval time.Duration
	cmds     chan func()
	done     chan struct{}
}

// NewRunner creates a runner ticking every interval
func NewRunner(loop *Loop, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Runner{
		loop:     loop,
		interval: interval,
		cmds:     make(chan func(), CommandBufferSize),
		done:     make(chan struct{}),
	}
}

// Loop returns the driven loop. Only touch it from posted commands.
func (r *Runner) Loop() *Loop {
	return r.loop
}

// Run blocks until ctx is cancelled, stepping the loop on every tick.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-r.cmds:
			fn()
		case now := <-ticker.C:
			r.loop.Step(now.Sub(last))
			last = now
		}
	}
}

// Done is closed once Run has returned
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Do posts fn to the loop goroutine without waiting for it to run.
func (r *Runner) Do(ctx context.Context, fn func()) error {
	select {
	case <-r.done:
		return ErrRunnerStopped
	default:
	}

	select {
	case r.cmds <- fn:
		return nil
	case <-r.done:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Call posts fn and waits until it has run.
func (r *Runner) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := r.Do(ctx, func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-r.done:
		// Run may have exited with the command still queued
		select {
		case <-finished:
			return nil
		default:
			return ErrRunnerStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}
