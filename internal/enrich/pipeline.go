package enrich

import (
	"context"
	"log/slog"
	"sync"
)

// Pipeline applies a sequence of stages to every item. Steps within a stage
// run in parallel and stages run sequentially. Step errors are logged and do
// not stop processing of the item.
//
// Pipeline is generic over the item type T.
type Pipeline[T any] struct {
	stages []Stage[T]
	log    *slog.Logger
}

// NewPipeline constructs a Pipeline from the provided stages. Stages will be
// applied to each item in order.
func NewPipeline[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages, log: slog.Default()}
}

// WithLogger sets where step failures are reported.
func (p *Pipeline[T]) WithLogger(log *slog.Logger) *Pipeline[T] {
	if log != nil {
		p.log = log
	}
	return p
}

// Run applies all stages to each item in place and returns the number of
// step failures. It stops early, between items, once ctx is done.
func (p *Pipeline[T]) Run(ctx context.Context, items []*T) int {
	var (
		mu       sync.Mutex
		failures int
	)
	for _, item := range items {
		if ctx.Err() != nil {
			return failures
		}
		for _, stage := range p.stages {
			var wg sync.WaitGroup
			for _, step := range stage.steps {
				wg.Add(1)
				go func(step Step[T]) {
					defer wg.Done()
					if err := step(ctx, item); err != nil {
						p.log.Warn("enrich_step_failed", slog.String("error", err.Error()))
						mu.Lock()
						failures++
						mu.Unlock()
					}
				}(step)
			}
			wg.Wait() // stage barrier
		}
	}
	return failures
}
