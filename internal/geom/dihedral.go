package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Torsion is the dihedral angle defined by four points i, j, k, l together
// with the intermediate vectors of its derivative.
type Torsion struct {
	// Phi is in (-pi, pi]; cis is 0 and trans is pi.
	Phi float64

	Rij r3.Vec // i - j
	Rkj r3.Vec // k - j
	Rkl r3.Vec // k - l

	M r3.Vec // Rij x Rkj, normal of the i-j-k plane
	N r3.Vec // Rkj x Rkl, normal of the j-k-l plane
}

// Dihedral computes the torsion i-j-k-l. Bond vectors are wrapped with
// BondedDelta.
func Dihedral(pi, pj, pk, pl, box r3.Vec) Torsion {
	t := Torsion{
		Rij: BondedDelta(pi, pj, box),
		Rkj: BondedDelta(pk, pj, box),
		Rkl: BondedDelta(pk, pl, box),
	}
	t.M = r3.Cross(t.Rij, t.Rkj)
	t.N = r3.Cross(t.Rkj, t.Rkl)
	t.Phi = Angle(t.M, t.N)
	if r3.Dot(t.Rij, t.N) < 0 {
		t.Phi = -t.Phi
	}
	return t
}

// Angle returns the angle between u and v in [0, pi].
func Angle(u, v r3.Vec) float64 {
	return math.Atan2(r3.Norm(r3.Cross(u, v)), r3.Dot(u, v))
}
