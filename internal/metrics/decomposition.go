package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/sim"
)

// DecompositionResidual is the largest gap between a category's energy and
// the sum of its per-atom shares, over all frames and categories.
type DecompositionResidual struct {
	name     string
	residual float64
	buf      []float64
}

func NewDecompositionResidual() *DecompositionResidual {
	return &DecompositionResidual{name: "decomposition_residual"}
}

func (d *DecompositionResidual) Name() string { return d.name }

func (d *DecompositionResidual) Observe(fr sim.FrameResult) {
	if cap(d.buf) < len(fr.AtomEnergies) {
		d.buf = make([]float64, len(fr.AtomEnergies))
	}
	shares := d.buf[:len(fr.AtomEnergies)]
	for c := 0; c < ff.NumCategories; c++ {
		for i, e := range fr.AtomEnergies {
			shares[i] = e[c]
		}
		d.residual = math.Max(d.residual, math.Abs(floats.Sum(shares)-fr.Energies[c]))
	}
}

func (d *DecompositionResidual) Value() float64 { return d.residual }

func (d *DecompositionResidual) Reset() { d.residual = 0 }
