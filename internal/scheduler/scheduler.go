package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/BrandishReveal_Go/internal/worker"
)

// Scheduler enqueues jobs on a worker pool at fixed intervals
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. A tick is skipped while
// the pool's queue is full, so a slow job never piles up behind itself.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.workerPool.TryEnqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.wg.Wait()
	})
}
