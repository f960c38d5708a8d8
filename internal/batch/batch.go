// Package batch runs a bounded number of validations concurrently while
// preserving input order in the output (spec.md §5).
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel validations when the caller does not
// specify one.
const DefaultConcurrency = 8

// Run applies fn to every item in items, at most concurrency at a time, and
// returns results in the same order as items. The catalogue is read-only,
// so no coordination beyond the hierarchy resolver's own locking is needed
// between workers (spec.md §5).
func Run[T any](ctx context.Context, items []string, concurrency int, fn func(context.Context, string) (T, error)) ([]T, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	results := make([]T, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			result, err := fn(gctx, item)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
