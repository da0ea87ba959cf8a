package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/geom"
	"github.com/san-kum/ffeval/internal/stage"
)

// TorsionEnergy sums the terms of one staged torsion row at angle phi. The
// row holds (k, phase, periodicity) triples and ends at the first NaN k.
// Periodicity > 0 is a cosine term; otherwise the term is harmonic in the
// wrapped difference phi-phase.
func TorsionEnergy(row []float64, phi float64) (pot, dEdphi float64) {
	for c := 0; c+2 < len(row); c += 3 {
		k := row[c]
		if math.IsNaN(k) {
			break
		}
		phase, per := row[c+1], row[c+2]
		if per > 0 {
			arg := per*phi - phase
			pot += k * (1 + math.Cos(arg))
			dEdphi -= per * k * math.Sin(arg)
			continue
		}
		diff := phi - phase
		if diff < -math.Pi {
			diff += 2 * math.Pi
		} else if diff > math.Pi {
			diff -= 2 * math.Pi
		}
		pot += k * diff * diff
		dEdphi += 2 * k * diff
	}
	return pot, dEdphi
}

// TorsionForces spreads dE/dphi over the four atoms of tor.
func TorsionForces(tor geom.Torsion, dEdphi float64) (fi, fj, fk, fl r3.Vec) {
	nrkj2 := r3.Norm2(tor.Rkj)
	nrkj := math.Sqrt(nrkj2)
	fi = r3.Scale(-dEdphi*nrkj/r3.Norm2(tor.M), tor.M)
	fl = r3.Scale(dEdphi*nrkj/r3.Norm2(tor.N), tor.N)

	p := r3.Dot(tor.Rij, tor.Rkj) / nrkj2
	q := r3.Dot(tor.Rkl, tor.Rkj) / nrkj2
	s := r3.Sub(r3.Scale(p, fi), r3.Scale(q, fl))

	fj = r3.Sub(s, fi)
	fk = r3.Scale(-1, r3.Add(fl, s))
	return fi, fj, fk, fl
}

// EvaluateDihedral adds proper dihedral n of t to acc.
func EvaluateDihedral(t *stage.Tables, f ff.Frame, n int, acc *Accumulator) {
	evaluateTorsion(ff.Dihedral, t.Dihedrals[n], t.DihedralParams.Row(n), f, acc)
}

// EvaluateImproper adds improper n of t to acc.
func EvaluateImproper(t *stage.Tables, f ff.Frame, n int, acc *Accumulator) {
	evaluateTorsion(ff.Improper, t.Impropers[n], t.ImproperParams.Row(n), f, acc)
}

func evaluateTorsion(c ff.Category, atoms [4]int, row []float64, f ff.Frame, acc *Accumulator) {
	i, j, k, l := atoms[0], atoms[1], atoms[2], atoms[3]
	tor := geom.Dihedral(f.Coords[i], f.Coords[j], f.Coords[k], f.Coords[l], f.Box)
	pot, dEdphi := TorsionEnergy(row, tor.Phi)
	acc.deposit(c, pot, i, j, k, l)

	fi, fj, fk, fl := TorsionForces(tor, dEdphi)
	acc.Forces[i] = r3.Add(acc.Forces[i], fi)
	acc.Forces[j] = r3.Add(acc.Forces[j], fj)
	acc.Forces[k] = r3.Add(acc.Forces[k], fk)
	acc.Forces[l] = r3.Add(acc.Forces[l], fl)
}
