package event

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type retryItem struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps a Bus so a failed publish is retried in the
// background with exponential backoff. Events that exhaust their retries, or
// arrive while the retry queue is full, are written to the dead-letter file.
type ResilientPublisher struct {
	bus        Bus
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter
	log        *slog.Logger

	queue    chan retryItem
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewResilientPublisher starts the retry worker. Call Shutdown to stop it.
func NewResilientPublisher(bus Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = RetryInitialDelay
	}

	p := &ResilientPublisher{
		bus:        bus,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		deadLetter: dl,
		log:        slog.Default(),
		queue:      make(chan retryItem, RetryQueueBufferSize),
		stop:       make(chan struct{}),
	}
	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

// Publish tries the bus once and hands failures to the retry worker. It never
// blocks on retries and always returns nil.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// PublishWithRetry publishes event, queuing it for retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}
	p.log.Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)
	p.enqueue(retryItem{event: event, attempts: 1, lastErr: err})
}

// Subscribe delegates to the wrapped bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) enqueue(item retryItem) {
	select {
	case <-p.stop:
		p.writeDeadLetter(item)
		return
	default:
	}

	select {
	case p.queue <- item:
	default:
		p.log.Error(LogMsgRetryQueueFull, "event_type", item.event.Type)
		p.writeDeadLetter(item)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stop:
			return
		case item := <-p.queue:
			timer := time.NewTimer(CalculateRetryDelay(p.baseDelay, item.attempts))
			select {
			case <-p.stop:
				timer.Stop()
				p.writeDeadLetter(item)
				return
			case <-timer.C:
			}
			p.retry(item)
		}
	}
}

func (p *ResilientPublisher) retry(item retryItem) {
	err := p.bus.Publish(context.Background(), item.event)
	if err == nil {
		p.log.Info(LogMsgEventRetrySucceeded, "event_type", item.event.Type, "attempt", item.attempts)
		return
	}

	item.lastErr = err
	if item.attempts >= p.maxRetries {
		p.log.Error(LogMsgEventRetryExhausted, "event_type", item.event.Type, "attempts", item.attempts+1)
		item.attempts++
		p.writeDeadLetter(item)
		return
	}

	p.log.Warn(LogMsgEventRetryFailed, "event_type", item.event.Type, "attempt", item.attempts, "error", err)
	item.attempts++
	p.enqueue(item)
}

func (p *ResilientPublisher) writeDeadLetter(item retryItem) {
	if err := p.deadLetter.Write(item.event, item.attempts, item.lastErr); err != nil {
		p.log.Error(LogMsgDeadLetterWriteFailed, "event_type", item.event.Type, "error", err)
	}
}

// Shutdown stops the retry worker and dead-letters whatever is still queued.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.stop) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		p.log.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	drained := 0
	for {
		select {
		case item := <-p.queue:
			p.writeDeadLetter(item)
			drained++
		default:
			if drained > 0 {
				p.log.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return p.deadLetter.Close()
		}
	}
}
