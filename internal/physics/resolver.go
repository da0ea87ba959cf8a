package physics

import (
	"math"

	"github.com/san-kum/ffeval/internal/stage"
)

// LJ is the resolved Lennard-Jones interaction of one pair.
type LJ struct {
	Sigma   float64
	Epsilon float64
	A       float64 // 4*eps*sigma^12
	B       float64 // 4*eps*sigma^6
	Scale   float64
}

// CombineTypes resolves the parameters of type indices ti and tj. An NBFIX
// override wins over the Lorentz-Berthelot rule. scaled14 selects the 1-4
// parameters. Scale is left at 1.
func CombineTypes(t *stage.Tables, ti, tj int, scaled14 bool) LJ {
	var sigma, eps float64
	found := false
	for _, f := range t.NBFix {
		if (f.TypeA == ti && f.TypeB == tj) || (f.TypeA == tj && f.TypeB == ti) {
			if scaled14 {
				sigma, eps = f.Sigma14, f.Epsilon14
			} else {
				sigma, eps = f.Sigma, f.Epsilon
			}
			found = true
			break
		}
	}
	if !found {
		if scaled14 {
			sigma = 0.5 * (t.Sigma14[ti] + t.Sigma14[tj])
			eps = math.Sqrt(t.Epsilon14[ti] * t.Epsilon14[tj])
		} else {
			sigma = 0.5 * (t.Sigma[ti] + t.Sigma[tj])
			eps = math.Sqrt(t.Epsilon[ti] * t.Epsilon[tj])
		}
	}

	s6 := sigma * sigma * sigma
	s6 *= s6
	return LJ{
		Sigma:   sigma,
		Epsilon: eps,
		A:       4 * eps * s6 * s6,
		B:       4 * eps * s6,
		Scale:   1,
	}
}

// ResolvePair resolves atoms i < j, picking the 1-4 parameters and scale when
// the pair is a registered 1-4 pair.
func ResolvePair(t *stage.Tables, i, j int) LJ {
	col := t.VdW14Atoms.Find(i, j)
	lj := CombineTypes(t, t.TypeIndex[i], t.TypeIndex[j], col >= 0)
	if col >= 0 {
		lj.Scale = t.VdW14Scale.At(i, col)
	}
	return lj
}

// ElecScale returns the electrostatic scale of atoms i < j.
func ElecScale(t *stage.Tables, i, j int) float64 {
	if col := t.Elec14Atoms.Find(i, j); col >= 0 {
		return t.Elec14Scale.At(i, col)
	}
	return 1
}
