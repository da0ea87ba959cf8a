package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/sim"
)

// Stability is the fraction of frames whose energies are finite and whose
// forces all stay below threshold. Overlapping atoms show up here first.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(fr sim.FrameResult) {
	s.samples++
	total := fr.Total()
	if math.IsNaN(total) || math.IsInf(total, 0) {
		s.violations++
		return
	}
	for _, f := range fr.Forces {
		if n := r3.Norm(f); n > s.threshold || math.IsNaN(n) {
			s.violations++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
