package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/compute"
	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/geom"
	"github.com/san-kum/ffeval/internal/physics"
	"github.com/san-kum/ffeval/internal/stage"
)

// ScanPoint is the energy of the system at one dihedral angle.
type ScanPoint struct {
	Phi      float64
	Energies ff.Energies
}

// TorsionScan rotates the last atom of dihedral n about its central bond
// through steps evenly spaced angles in [-pi, pi) and evaluates each
// geometry. Only that atom moves.
func TorsionScan(t *stage.Tables, b compute.Backend, f ff.Frame, n, steps int) ([]ScanPoint, error) {
	if n < 0 || n >= len(t.Dihedrals) {
		return nil, fmt.Errorf("dihedral %d out of range (%d dihedrals)", n, len(t.Dihedrals))
	}
	if steps < 1 {
		return nil, fmt.Errorf("steps must be positive, got %d", steps)
	}

	d := t.Dihedrals[n]
	pi, pj, pk, pl := f.Coords[d[0]], f.Coords[d[1]], f.Coords[d[2]], f.Coords[d[3]]
	phi0 := geom.Dihedral(pi, pj, pk, pl, f.Box).Phi
	axis := geom.BondedDelta(pk, pj, f.Box)
	arm := geom.BondedDelta(pl, pk, f.Box)

	work := f.Clone()
	acc := physics.NewAccumulator(t.NumAtoms)
	out := make([]ScanPoint, steps)
	for s := range out {
		target := -math.Pi + 2*math.Pi*float64(s)/float64(steps)
		rot := r3.NewRotation(target-phi0, r3.Unit(axis))
		work.Coords[d[3]] = r3.Add(pk, rot.Rotate(arm))

		acc.Reset()
		b.Evaluate(t, work, acc)
		out[s] = ScanPoint{Phi: target, Energies: acc.Energies}
	}
	return out, nil
}
