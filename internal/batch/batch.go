// Package batch runs many independent keyed fetches under a concurrency cap
// and an inter-group pacing policy, so aggregate request rate stays under
// upstream ceilings.
//
// Items are partitioned into consecutive groups of the configured size. A
// group's items run concurrently; the next group starts only after the
// previous group has fully settled plus the configured delay. Ordering within
// a group is not guaranteed, so results are keyed by item identity.
package batch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Options configures a batched run.
type Options struct {
	// Concurrency is the group size. Values < 1 are treated as 1.
	Concurrency int
	// InterBatchDelay separates consecutive groups. Skipped after the final
	// group.
	InterBatchDelay time.Duration
	// Limiter, when set, paces individual items with a token bucket instead
	// of (or in addition to) the fixed delay, which keeps the pacing policy
	// testable without wall-clock sleeps.
	Limiter *rate.Limiter
}

// Result is the settled outcome for one item. A failed item carries its
// error; the zero Value then stands for absence.
type Result[V any] struct {
	Value V
	Err   error
}

// OK reports whether the item produced a value.
func (r Result[V]) OK() bool { return r.Err == nil }

// GroupCount returns the number of sequential groups for n items at the
// given concurrency.
func GroupCount(n, concurrency int) int {
	if concurrency < 1 {
		concurrency = 1
	}
	return (n + concurrency - 1) / concurrency
}

// Run executes worker over every item and returns a result per key. One
// item's failure records an error for that key only; siblings in the same and
// later groups always run. Context cancellation stops scheduling new groups;
// unscheduled items report the context error.
func Run[K comparable, V any](ctx context.Context, items []K, worker func(ctx context.Context, item K) (V, error), opts Options) map[K]Result[V] {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make(map[K]Result[V], len(items))
	var mu sync.Mutex

	for start := 0; start < len(items); start += concurrency {
		if err := ctx.Err(); err != nil {
			for _, item := range items[start:] {
				results[item] = Result[V]{Err: err}
			}
			return results
		}

		end := start + concurrency
		if end > len(items) {
			end = len(items)
		}
		group := items[start:end]

		g, gCtx := errgroup.WithContext(ctx)
		for _, item := range group {
			item := item
			g.Go(func() error {
				if opts.Limiter != nil {
					if err := opts.Limiter.Wait(gCtx); err != nil {
						mu.Lock()
						results[item] = Result[V]{Err: err}
						mu.Unlock()
						return nil
					}
				}
				v, err := worker(gCtx, item)
				if err != nil {
					zap.L().Debug("batch: item failed",
						zap.Any("item", item),
						zap.Error(err),
					)
				}
				mu.Lock()
				results[item] = Result[V]{Value: v, Err: err}
				mu.Unlock()
				// Worker errors settle into the result map; returning nil
				// keeps the group's siblings running.
				return nil
			})
		}
		_ = g.Wait()

		if end < len(items) && opts.InterBatchDelay > 0 {
			if !sleep(ctx, opts.InterBatchDelay) {
				for _, item := range items[end:] {
					results[item] = Result[V]{Err: ctx.Err()}
				}
				return results
			}
		}
	}

	return results
}

// sleep waits for d or until ctx is done. Returns false on cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
