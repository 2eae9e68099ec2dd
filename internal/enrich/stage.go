// Package enrich runs preparation steps over freshly loaded records. Steps in
// the same stage run in parallel, stages run one after the other.
package enrich

import (
	"context"
)

// Step is a single operation that mutates the given item. Steps in the same
// stage run concurrently on the same item, so they must write disjoint fields.
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that are safe to execute in parallel for one item.
type Stage[T any] struct {
	steps []Step[T]
}

// NewStage constructs a Stage from the provided steps.
func NewStage[T any](steps ...Step[T]) Stage[T] {
	return Stage[T]{steps: steps}
}
