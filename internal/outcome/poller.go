package outcome

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/logger"
)

// Poller waits for outcomes that the authority has not published yet. Only
// not-found errors are retried; anything else is returned at once.
type Poller struct {
	next     Provider
	interval time.Duration
	timeout  time.Duration
}

// NewPoller wraps next. Zero durations use the defaults.
func NewPoller(next Provider, interval, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	return &Poller{next: next, interval: interval, timeout: timeout}
}

// Battle polls until the battle exists, the timeout passes or ctx ends
func (p *Poller) Battle(ctx context.Context, id int64) (*domain.BattleOutcome, error) {
	return poll(ctx, p, id, domain.ErrBattleNotFound, p.next.Battle)
}

// Spin polls until the spin exists, the timeout passes or ctx ends
func (p *Poller) Spin(ctx context.Context, id int64) (*domain.SpinOutcome, error) {
	return poll(ctx, p, id, domain.ErrSpinNotFound, p.next.Spin)
}

func poll[T any](ctx context.Context, p *Poller, id int64, notFound error, fetch func(context.Context, int64) (T, error)) (T, error) {
	log := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		v, err := fetch(ctx, id)
		if err == nil {
			log.Debug(LogMsgOutcomeReady, "id", id, "attempts", attempt)
			return v, nil
		}
		if !errors.Is(err, notFound) {
			return v, err
		}
		log.Debug(LogMsgOutcomePending, "id", id, "attempt", attempt)

		select {
		case <-ctx.Done():
			var zero T
			return zero, fmt.Errorf("%s: %w", ErrContextPollCancelled, errors.Join(notFound, ctx.Err()))
		case <-ticker.C:
		}
	}
}
