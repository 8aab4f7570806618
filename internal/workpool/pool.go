// Package workpool runs batches of independent tasks on a bounded number of
// goroutines and collects their results positionally.
//
// A batch either yields every result, with result[i] belonging to task i, or
// a single error: the first task failure, a timeout, or the caller's context
// being cancelled. Results of a failed batch are discarded.
package workpool

import (
	"context"
	"errors"
	"time"

	"github.com/vk/plancreator/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// ErrTimeout is returned when a batch does not complete within the pool's
// timeout. Individual stragglers are not identified.
var ErrTimeout = errors.New("timed out waiting for batch to complete")

// Default pool settings.
const (
	DefaultWorkers = 2
	DefaultTimeout = time.Minute
)

// Pool holds the concurrency limit and the per-batch timeout.
type Pool struct {
	workers int
	timeout time.Duration
}

// New creates a pool. Non-positive values fall back to the defaults.
func New(workers int, timeout time.Duration) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pool{workers: workers, timeout: timeout}
}

// Workers returns the concurrency limit.
func (p *Pool) Workers() int {
	return p.workers
}

// Timeout returns the per-batch timeout.
func (p *Pool) Timeout() time.Duration {
	return p.timeout
}

// Run executes fn for every index in [0, n) with at most p.Workers()
// invocations in flight. The context passed to fn is cancelled when any task
// fails, when the batch times out, or when ctx is cancelled.
//
// Run returns as soon as the batch is decided. A task that ignores its
// context may still be running after a timeout; its result is dropped.
func Run[T any](ctx context.Context, p *Pool, n int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	logger := ctxlog.FromContext(ctx)

	batchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(batchCtx)
	g.SetLimit(p.workers)

	results := make([]T, n)
	done := make(chan error, 1)

	// Submission blocks once the limit is reached, so it runs off the
	// caller's goroutine to keep the timeout enforceable.
	go func() {
		for i := 0; i < n; i++ {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, err := fn(gctx, i)
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && batchCtx.Err() != nil && ctx.Err() == nil {
				return nil, ErrTimeout
			}
			return nil, err
		}
		if err := batchCtx.Err(); err != nil {
			// Every task finished, but only because the batch was cut short.
			return nil, batchErr(ctx)
		}
		return results, nil
	case <-batchCtx.Done():
		err := batchErr(ctx)
		logger.Debug("Batch abandoned before completion.", "tasks", n, "error", err)
		return nil, err
	}
}

// batchErr distinguishes a caller cancellation from the pool's own timeout.
func batchErr(parent context.Context) error {
	if err := parent.Err(); err != nil {
		return err
	}
	return ErrTimeout
}
