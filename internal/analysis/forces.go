package analysis

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/compute"
	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/physics"
	"github.com/san-kum/ffeval/internal/stage"
)

// ForceReport compares analytic forces with numerical ones.
type ForceReport struct {
	Analytic     []r3.Vec
	Numeric      []r3.Vec
	MaxDeviation float64
	WorstAtom    int
}

// CheckForces displaces every coordinate by ±h and differentiates the total
// energy. It costs 6N frame evaluations.
func CheckForces(t *stage.Tables, b compute.Backend, f ff.Frame, h float64) ForceReport {
	acc := physics.NewAccumulator(t.NumAtoms)
	b.Evaluate(t, f, acc)

	report := ForceReport{
		Analytic:  append([]r3.Vec(nil), acc.Forces...),
		Numeric:   make([]r3.Vec, t.NumAtoms),
		WorstAtom: -1,
	}

	work := f.Clone()
	energy := func() float64 {
		acc.Reset()
		b.Evaluate(t, work, acc)
		return acc.Energies.Total()
	}

	for i := range work.Coords {
		orig := work.Coords[i]
		var grad [3]float64
		for axis, step := range []r3.Vec{{X: h}, {Y: h}, {Z: h}} {
			work.Coords[i] = r3.Add(orig, step)
			ep := energy()
			work.Coords[i] = r3.Sub(orig, step)
			em := energy()
			grad[axis] = (ep - em) / (2 * h)
		}
		work.Coords[i] = orig

		report.Numeric[i] = r3.Vec{X: -grad[0], Y: -grad[1], Z: -grad[2]}
		if d := r3.Norm(r3.Sub(report.Numeric[i], report.Analytic[i])); d > report.MaxDeviation || report.WorstAtom < 0 {
			report.MaxDeviation = d
			report.WorstAtom = i
		}
	}
	return report
}
