package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/ffeval/internal/compute"
	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/physics"
	"github.com/san-kum/ffeval/internal/stage"
)

// Evaluator drives a backend over the frames of a trajectory.
type Evaluator struct {
	tables    *stage.Tables
	backend   compute.Backend
	metrics   []Metric
	observers []Observer
}

func New(tables *stage.Tables, backend compute.Backend) *Evaluator {
	return &Evaluator{
		tables:    tables,
		backend:   backend,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (e *Evaluator) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Evaluator) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Evaluator) Tables() *stage.Tables    { return e.tables }
func (e *Evaluator) Backend() compute.Backend { return e.backend }

// Run evaluates frames and collects energies, per-atom energies, forces and
// metrics. All frames are validated before any is evaluated; ctx is checked
// between frames.
func (e *Evaluator) Run(ctx context.Context, frames []ff.Frame, cfg Config) (*Result, error) {
	if err := e.ValidateFrames(frames); err != nil {
		return nil, err
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	result := newResult(len(frames))
	result.Backend = e.backend.Name()
	start := time.Now()

	var err error
	if cfg.ParallelFrames {
		err = e.runParallel(ctx, frames, cfg, result)
	} else {
		err = e.runSerial(ctx, frames, result)
	}
	if err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(start)
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (e *Evaluator) runSerial(ctx context.Context, frames []ff.Frame, result *Result) error {
	for i, f := range frames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		e.evaluateInto(result, i, f)
		fr := result.Frame(i)
		for _, m := range e.metrics {
			m.Observe(fr)
		}
		for _, obs := range e.observers {
			obs.OnFrame(fr)
		}
	}
	return nil
}

// EvaluateFrame evaluates a single frame without validation, metrics or
// observers.
func (e *Evaluator) EvaluateFrame(f ff.Frame) FrameResult {
	acc := physics.NewAccumulator(e.tables.NumAtoms)
	e.backend.Evaluate(e.tables, f, acc)
	return FrameResult{Energies: acc.Energies, AtomEnergies: acc.AtomEnergies, Forces: acc.Forces}
}

func (e *Evaluator) evaluateInto(result *Result, i int, f ff.Frame) {
	fr := e.EvaluateFrame(f)
	result.Energies[i] = fr.Energies
	result.Totals[i] = fr.Total()
	result.AtomEnergies[i] = fr.AtomEnergies
	result.Forces[i] = fr.Forces
}

// ValidateFrames checks every frame against the staged atom count and for
// non-finite values.
func (e *Evaluator) ValidateFrames(frames []ff.Frame) error {
	for i, f := range frames {
		if len(f.Coords) != e.tables.NumAtoms {
			return &FrameError{
				Frame:   i,
				Wrapped: fmt.Errorf("%w: %d coordinates for %d atoms", ff.ErrDimensionMismatch, len(f.Coords), e.tables.NumAtoms),
			}
		}
		if !f.IsValid() {
			return &FrameError{Frame: i, Wrapped: ff.ErrInvalidFrame}
		}
	}
	return nil
}
