package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/sim"
)

// MaxForce is the largest per-atom force norm over all frames.
type MaxForce struct {
	name string
	max  float64
}

func NewMaxForce() *MaxForce {
	return &MaxForce{name: "max_force"}
}

func (m *MaxForce) Name() string { return m.name }

func (m *MaxForce) Observe(fr sim.FrameResult) {
	if len(fr.Forces) == 0 {
		return
	}
	m.max = math.Max(m.max, floats.Max(forceNorms(fr.Forces)))
}

func (m *MaxForce) Value() float64 { return m.max }

func (m *MaxForce) Reset() { m.max = 0 }

// RMSForce is the root mean square per-atom force norm over all frames.
type RMSForce struct {
	name    string
	sum     float64
	samples int
}

func NewRMSForce() *RMSForce {
	return &RMSForce{name: "rms_force"}
}

func (r *RMSForce) Name() string { return r.name }

func (r *RMSForce) Observe(fr sim.FrameResult) {
	norms := forceNorms(fr.Forces)
	r.sum += floats.Dot(norms, norms)
	r.samples += len(norms)
}

func (r *RMSForce) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sum / float64(r.samples))
}

func (r *RMSForce) Reset() {
	r.sum = 0
	r.samples = 0
}

func forceNorms(forces []r3.Vec) []float64 {
	out := make([]float64, len(forces))
	for i, f := range forces {
		out[i] = r3.Norm(f)
	}
	return out
}
