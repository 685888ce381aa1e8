package utils

import (
	"context"
	"iter"

	"blockfrost_proxy/internal/domain/entity"
)

// PageFetcher returns a single page of a list endpoint.
type PageFetcher[T any] func(ctx context.Context, page entity.Pagination) ([]T, error)

// Pages lazily walks a paginated endpoint, one request per step, starting at page 1.
// Iteration ends after a page shorter than the batch size, on the first error,
// when ctx is done or after opts.MaxPages pages.
// No page is requested before the previous one has been consumed.
func Pages[T any](ctx context.Context, fetch PageFetcher[T], opts *entity.AllPagesOptions) iter.Seq2[[]T, error] {
	o := opts.WithDefaults()
	return func(yield func([]T, error) bool) {
		for n := 1; o.MaxPages <= 0 || n <= o.MaxPages; n++ {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			items, err := fetch(ctx, o.PageRequest(n))
			if err != nil {
				yield(nil, err)
				return
			}
			if len(items) == 0 {
				return
			}
			if !yield(items, nil) {
				return
			}
			if len(items) < o.BatchSize {
				return
			}
		}
	}
}

// CollectPages concatenates every page produced by Pages.
func CollectPages[T any](ctx context.Context, fetch PageFetcher[T], opts *entity.AllPagesOptions) ([]T, error) {
	out := make([]T, 0)
	for items, err := range Pages(ctx, fetch, opts) {
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}
