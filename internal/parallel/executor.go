// Package parallel runs per-document work (preprocessing) over a
// worker pool sized to the machine, the same way the Wikidata
// QRank builder's buildPageEntities splits work across runtime.NumCPU()
// goroutines coordinated with golang.org/x/sync/errgroup — but without
// that builder's fail-fast behavior: one task's error must not abort
// the others, since a single bad document shouldn't sink an entire
// corpus build.
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result pairs a task's output with its error, so a failure can be
// reported without losing the results of every other task.
type Result[R any] struct {
	Value R
	Err   error
}

// Partition splits items into at most n contiguous, near-equal-sized
// slices (sizes differ by at most one element), preserving order.
func Partition[T any](items []T, n int) [][]T {
	if n <= 0 {
		n = 1
	}
	if n > len(items) {
		n = len(items)
	}
	if n == 0 {
		return nil
	}

	parts := make([][]T, 0, n)
	base := len(items) / n
	rem := len(items) % n
	start := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		parts = append(parts, items[start:start+size])
		start += size
	}
	return parts
}

// Map applies fn to every item using up to workers goroutines and
// returns one Result per item, indexed exactly like items: Result[i]
// is always fn(items[i]), regardless of which worker processed it or
// in what order tasks finished. A task that returns an error does not
// cancel or skip any other task; if ctx is canceled, tasks not yet
// started record ctx.Err() instead of running fn.
func Map[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}
	if workers <= 0 {
		workers = 1
	}

	var group errgroup.Group
	base := len(items) / workers
	if base == 0 {
		workers = len(items)
		base = 1
	}
	rem := len(items) % workers

	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		lo, hi := start, start+size
		start = hi

		group.Go(func() error {
			for idx := lo; idx < hi; idx++ {
				if err := ctx.Err(); err != nil {
					results[idx] = Result[R]{Err: err}
					continue
				}
				value, err := fn(ctx, items[idx])
				results[idx] = Result[R]{Value: value, Err: err}
			}
			return nil
		})
	}
	group.Wait()

	return results
}
