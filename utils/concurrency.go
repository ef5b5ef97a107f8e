package utils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs jobs on at most maxWorkers goroutines. The first job to
// fail cancels the pool context; later jobs see the cancellation and
// return early.
type WorkerPool struct {
	g   *errgroup.Group
	ctx context.Context
}

// NewWorkerPool creates a WorkerPool bound to ctx with the given concurrency.
func NewWorkerPool(ctx context.Context, maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	return &WorkerPool{g: g, ctx: gctx}
}

// Submit enqueues a job. It blocks while all workers are busy.
func (wp *WorkerPool) Submit(job func(ctx context.Context) error) {
	wp.g.Go(func() error {
		if err := wp.ctx.Err(); err != nil {
			return err
		}
		return job(wp.ctx)
	})
}

// Wait blocks until all submitted jobs have completed and returns the
// first error, if any.
func (wp *WorkerPool) Wait() error {
	return wp.g.Wait()
}
