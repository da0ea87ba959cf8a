package sim

import (
	"context"
	"sync"

	"github.com/san-kum/ffeval/internal/ff"
)

// runParallel spreads frames over workers. Each frame writes only its own
// result slot; metrics observe the frames in order once all are done.
func (e *Evaluator) runParallel(ctx context.Context, frames []ff.Frame, cfg Config, result *Result) error {
	var mu sync.Mutex
	ff.ParallelFor(len(frames), cfg.Workers, 1, func(_, start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			e.evaluateInto(result, i, frames[i])

			if len(e.observers) == 0 {
				continue
			}
			mu.Lock()
			for _, obs := range e.observers {
				obs.OnFrame(result.Frame(i))
			}
			mu.Unlock()
		}
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	for i := range frames {
		fr := result.Frame(i)
		for _, m := range e.metrics {
			m.Observe(fr)
		}
	}
	return nil
}
