package physics

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
)

func TestHarmonicAngleEnergy(t *testing.T) {
	g := NewWithT(t)
	r21 := r3.Vec{X: 1}
	r23 := r3.Vec{Y: 2}

	pot, f0, f1, f2 := HarmonicAngle(50, math.Pi/3, r21, r23)
	g.Expect(pot).To(BeNumerically("~", 50*math.Pow(math.Pi/2-math.Pi/3, 2), 1e-12))
	g.Expect(r3.Norm(r3.Add(r3.Add(f0, f1), f2))).To(BeNumerically("<", 1e-12))

	// Opening past theta0 pushes the end atoms toward each other.
	g.Expect(f0.Y).To(BeNumerically(">", 0))
	g.Expect(f2.X).To(BeNumerically(">", 0))
}

func TestHarmonicAngleCollinear(t *testing.T) {
	g := NewWithT(t)
	pot, f0, f1, f2 := HarmonicAngle(40, 109.5*math.Pi/180, r3.Vec{X: -1}, r3.Vec{X: 2})

	g.Expect(math.IsNaN(pot)).To(BeFalse())
	g.Expect(pot).To(BeNumerically("~", 40*math.Pow(math.Pi-109.5*math.Pi/180, 2), 1e-12))
	for _, f := range []r3.Vec{f0, f1, f2} {
		g.Expect(f).To(Equal(r3.Vec{}))
	}
}

func TestAngleForcesMatchEnergyGradient(t *testing.T) {
	k, theta0 := 45.0, 1.9
	pos := []r3.Vec{{X: 1.1, Y: 0.2}, {}, {X: -0.3, Y: 1.0, Z: 0.4}}
	energy := func(p []r3.Vec) float64 {
		pot, _, _, _ := HarmonicAngle(k, theta0, r3.Sub(p[0], p[1]), r3.Sub(p[2], p[1]))
		return pot
	}

	_, f0, f1, f2 := HarmonicAngle(k, theta0, r3.Sub(pos[0], pos[1]), r3.Sub(pos[2], pos[1]))
	grad := numericGradient(pos, energy, 1e-6)
	for i, f := range []r3.Vec{f0, f1, f2} {
		if d := r3.Norm(r3.Add(f, grad[i])); d > 1e-6 {
			t.Errorf("atom %d: force %v does not match -gradient %v", i, f, r3.Scale(-1, grad[i]))
		}
	}
}

func TestEvaluateAngleSplitsEnergy(t *testing.T) {
	g := NewWithT(t)
	tables := chainTables(t, 0.5, 0.8333)
	f := frameOf(r3.Vec{}, r3.Vec{X: 1.5}, r3.Vec{X: 2, Y: 1.4}, r3.Vec{X: 3.5, Y: 1.4})

	acc := NewAccumulator(4)
	EvaluateAngle(tables, f, 0, acc)

	total := acc.Energies[ff.Angle]
	g.Expect(total).To(BeNumerically(">", 0))
	for _, i := range []int{0, 1, 2} {
		g.Expect(acc.AtomEnergies[i][ff.Angle]).To(BeNumerically("~", total/3, 1e-12))
	}
	g.Expect(acc.AtomEnergies[3][ff.Angle]).To(BeZero())
}

func TestBondedTermsIgnoreImageOfEndAtom(t *testing.T) {
	g := NewWithT(t)
	tables := chainTables(t, 0.5, 0.8333)
	box := r3.Vec{X: 10, Y: 10, Z: 10}
	coords := []r3.Vec{{X: 1}, {X: 2.5}, {X: 3, Y: 1.4}, {X: 4.5, Y: 1.4, Z: 0.6}}
	near := ff.Frame{Coords: coords, Box: box}

	far := near.Clone()
	far.Coords[0].X -= 20
	far.Coords[3].Y += 20

	want := NewAccumulator(4)
	EvaluateAngle(tables, near, 0, want)
	EvaluateDihedral(tables, near, 0, want)

	got := NewAccumulator(4)
	EvaluateAngle(tables, far, 0, got)
	EvaluateDihedral(tables, far, 0, got)

	g.Expect(got.Energies[ff.Angle]).To(BeNumerically("~", want.Energies[ff.Angle], 1e-10))
	g.Expect(got.Energies[ff.Dihedral]).To(BeNumerically("~", want.Energies[ff.Dihedral], 1e-10))
	for i := range want.Forces {
		g.Expect(r3.Norm(r3.Sub(got.Forces[i], want.Forces[i]))).To(BeNumerically("<", 1e-9))
	}
}
