package aggregate

import (
	"context"
	"time"
)

// PacedBatch runs fns strictly sequentially with a fixed delay between
// calls, trading throughput for upstream-quota safety. Results come
// back in issue order; the first error aborts the batch.
func PacedBatch[T any](ctx context.Context, delay time.Duration, fns []func(context.Context) (T, error)) ([]T, error) {
	out := make([]T, 0, len(fns))
	for i, fn := range fns {
		if i > 0 && delay > 0 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
