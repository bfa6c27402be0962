package worker

import (
	"context"
	"sync"

	"github.com/osse101/BrandishReveal_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

// Pool represents a worker pool. Jobs receive a context that is cancelled
// when the pool stops, so long-running jobs must watch it.
type Pool struct {
	name     string
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		name:     DefaultPoolName,
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Named sets the name the pool logs under
func (p *Pool) Named(name string) *Pool {
	p.name = name
	return p
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	log := logger.FromContext(p.ctx).With("pool", p.name, "worker", id)
	for {
		select {
		case <-p.quit:
			return
		case job := <-p.jobQueue:
			if err := job.Process(p.ctx); err != nil {
				log.Error(LogMsgWorkerJobFailed, "error", err)
			}
		}
	}
}

// Enqueue adds a job to the queue, blocking while the queue is full. It
// reports false if the pool stopped first.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	case <-p.quit:
		return false
	}
}

// TryEnqueue adds a job without blocking. It reports false when the queue is
// full or the pool has stopped.
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.FromContext(p.ctx).Warn(LogMsgQueueFull, "pool", p.name)
		return false
	}
}

// Pending returns the number of queued jobs not yet picked up
func (p *Pool) Pending() int {
	return len(p.jobQueue)
}

// Stop cancels running jobs and waits for the workers to finish. Queued jobs
// that never started are dropped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.cancel()
		p.wg.Wait()
		if n := len(p.jobQueue); n > 0 {
			logger.FromContext(context.Background()).Info(LogMsgQueuedJobsDropped, "pool", p.name, "count", n)
		}
	})
}
