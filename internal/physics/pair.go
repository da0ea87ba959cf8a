package physics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/geom"
	"github.com/san-kum/ffeval/internal/stage"
)

// HarmonicBond returns k*(r-r0)^2 and its derivative in r.
func HarmonicBond(k, r0, r float64) (pot, dEdr float64) {
	dr := r - r0
	return k * dr * dr, 2 * k * dr
}

// LennardJones returns the scaled 12-6 energy at r and its derivative.
func LennardJones(lj LJ, r float64) (pot, dEdr float64) {
	r2inv := 1 / (r * r)
	r6inv := r2inv * r2inv * r2inv
	r12inv := r6inv * r6inv
	pot = (lj.A*r12inv - lj.B*r6inv) * lj.Scale
	dEdr = (-12*lj.A*r12inv + 6*lj.B*r6inv) / r * lj.Scale
	return pot, dEdr
}

// Coulomb returns kqq/r and its derivative, where kqq already includes the
// unit factor, both charges and any 1-4 scale.
func Coulomb(kqq, r float64) (pot, dEdr float64) {
	pot = kqq / r
	return pot, -pot / r
}

// EvaluatePair adds the bond, van der Waals and electrostatic terms of atoms
// i < j to acc. Excluded pairs that are not bonded are skipped entirely;
// bonded pairs only get the bond term since every bond is also an exclusion.
func EvaluatePair(t *stage.Tables, f ff.Frame, i, j int, acc *Accumulator) {
	bondCol := t.BondAtoms.Find(i, j)
	excluded := t.Exclusions.Find(i, j) >= 0
	if excluded && bondCol < 0 {
		return
	}

	d := geom.Delta(f.Coords[i], f.Coords[j], f.Box)
	dist := r3.Norm(d)
	coeff := 0.0

	if bondCol >= 0 {
		pot, dEdr := HarmonicBond(t.BondParams.At(i, 2*bondCol), t.BondParams.At(i, 2*bondCol+1), dist)
		acc.deposit(ff.Bond, pot, i, j)
		coeff += dEdr
	}

	if !excluded {
		pot, dEdr := LennardJones(ResolvePair(t, i, j), dist)
		acc.deposit(ff.VdW, pot, i, j)
		coeff += dEdr

		kqq := ff.ElecFactor * ElecScale(t, i, j) * t.Charges[i] * t.Charges[j]
		pot, dEdr = Coulomb(kqq, dist)
		acc.deposit(ff.Elec, pot, i, j)
		coeff += dEdr
	}

	u := r3.Scale(coeff/dist, d)
	acc.Forces[i] = r3.Sub(acc.Forces[i], u)
	acc.Forces[j] = r3.Add(acc.Forces[j], u)
}
