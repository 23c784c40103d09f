// Package worker runs a CPU-sized pool of goroutines over arbitrary jobs,
// used by the batch analyser to evaluate file pairs concurrently.
package worker

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
)

// Job is one unit of work submitted to the pool.
type Job interface {
	Execute(ctx context.Context) error
}

// Pool is a fixed-size worker pool with a buffered job queue and graceful
// shutdown. The engine itself does not require concurrency — batch pair
// evaluation is embarrassingly parallel across pairs, so this exists purely
// to exploit that parallelism when a caller has many files to compare.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates a pool sized to the host's CPUs, reserving a quarter of them
// (at least one) for the rest of the process, and always running at least
// one worker.
func New(ctx context.Context) *Pool {
	totalCPU := runtime.NumCPU()
	systemReserve := max(1, totalCPU/4)
	size := max(1, totalCPU-systemReserve)
	log.Debug().
		Int("totalCPU", totalCPU).
		Int("systemReserve", systemReserve).
		Int("workers", size).
		Msg("pair worker pool initialized")

	poolCtx, cancel := context.WithCancel(ctx)
	p := &Pool{
		workers:  size,
		jobQueue: make(chan Job, size*2),
		ctx:      poolCtx,
		cancel:   cancel,
	}
	p.start()
	return p
}

func (p *Pool) start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			if err := job.Execute(p.ctx); err != nil {
				log.Error().Err(err).Msg("pair worker failed")
			}
		}
	}
}

// Submit enqueues a job, blocking until there is room or the pool's
// context is cancelled.
func (p *Pool) Submit(job Job) error {
	select {
	case <-p.ctx.Done():
		return p.ctx.Err()
	case p.jobQueue <- job:
		return nil
	}
}

// Close drains the queue and waits for all workers to exit.
func (p *Pool) Close() {
	close(p.jobQueue)
	p.wg.Wait()
	p.cancel()
}

// Size returns the number of worker goroutines.
func (p *Pool) Size() int {
	return p.workers
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
