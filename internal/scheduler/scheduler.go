package scheduler

import (
	"sync"
	"time"

	"github.com/agridesk/fieldbook/internal/worker"
)

type entry struct {
	interval time.Duration
	job      worker.Job
}

// Scheduler runs registered jobs on fixed intervals. Each tick hands
// the job to the worker pool, so a slow run never stalls the ticker of
// another job.
type Scheduler struct {
	pool    *worker.Pool
	entries []entry
	quit    chan struct{}
	wg      sync.WaitGroup
}

// New creates a scheduler that dispatches onto pool.
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. Nothing fires
// until Start is called.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.entries = append(s.entries, entry{interval: interval, job: job})
}

// Start launches one ticker goroutine per registered job.
func (s *Scheduler) Start() {
	for _, e := range s.entries {
		e := e
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			ticker := time.NewTicker(e.interval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					// Enqueue blocks when the pool queue is full,
					// which only delays this job's next tick.
					s.pool.Enqueue(e.job)
				case <-s.quit:
					return
				}
			}
		}()
	}
}

// Stop terminates all tickers and waits for them to exit. Jobs already
// handed to the pool keep running until the pool itself stops.
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
