package sim

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
)

// Metric reduces a run to one number. Frames are observed in index order.
type Metric interface {
	Name() string
	Observe(fr FrameResult)
	Value() float64
	Reset()
}

// Observer is notified as frames complete. With parallel frames the order
// is unspecified, but calls never overlap.
type Observer interface {
	OnFrame(fr FrameResult)
}

type Config struct {
	// ParallelFrames evaluates frames concurrently, one accumulator each.
	ParallelFrames bool
	// Workers bounds frame concurrency; 0 uses GOMAXPROCS.
	Workers int
}

// FrameResult is the outcome of one frame. Slices alias the Result they came
// from.
type FrameResult struct {
	Index        int
	Energies     ff.Energies
	AtomEnergies []ff.Energies
	Forces       []r3.Vec
}

func (fr FrameResult) Total() float64 {
	return fr.Energies.Total()
}

type Result struct {
	Energies     []ff.Energies   // frames x categories
	Totals       []float64       // frames
	AtomEnergies [][]ff.Energies // frames x atoms x categories
	Forces       [][]r3.Vec      // frames x atoms
	Metrics      map[string]float64
	Backend      string
	Elapsed      time.Duration
}

func newResult(frames int) *Result {
	return &Result{
		Energies:     make([]ff.Energies, frames),
		Totals:       make([]float64, frames),
		AtomEnergies: make([][]ff.Energies, frames),
		Forces:       make([][]r3.Vec, frames),
		Metrics:      make(map[string]float64),
	}
}

func (r *Result) NumFrames() int {
	return len(r.Energies)
}

func (r *Result) Frame(i int) FrameResult {
	return FrameResult{
		Index:        i,
		Energies:     r.Energies[i],
		AtomEnergies: r.AtomEnergies[i],
		Forces:       r.Forces[i],
	}
}

// Table returns the frames x 6 energy matrix in category order.
func (r *Result) Table() [][]float64 {
	out := make([][]float64, len(r.Energies))
	for i, e := range r.Energies {
		row := make([]float64, ff.NumCategories)
		copy(row, e[:])
		out[i] = row
	}
	return out
}

// Series returns one category's energy per frame.
func (r *Result) Series(c ff.Category) []float64 {
	out := make([]float64, len(r.Energies))
	for i, e := range r.Energies {
		out[i] = e[c]
	}
	return out
}

// FrameError reports which frame failed validation.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
