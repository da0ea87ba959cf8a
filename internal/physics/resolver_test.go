package physics

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/ffeval/internal/ff"
)

func TestCombineTypesIsSymmetric(t *testing.T) {
	g := NewWithT(t)
	a := ff.AtomType{Name: "A", Sigma: 3.0, Epsilon: 0.1, Sigma14: 2.8, Epsilon14: 0.05}
	b := ff.AtomType{Name: "B", Sigma: 3.6, Epsilon: 0.2, Sigma14: 3.4, Epsilon14: 0.1}
	tables := pairTables(t, a, b)

	for _, scaled := range []bool{false, true} {
		ab := CombineTypes(tables, 0, 1, scaled)
		ba := CombineTypes(tables, 1, 0, scaled)
		g.Expect(ab).To(Equal(ba))
	}

	lj := CombineTypes(tables, 0, 1, false)
	g.Expect(lj.Sigma).To(BeNumerically("~", 3.3, 1e-12))
	g.Expect(lj.Epsilon).To(BeNumerically("~", math.Sqrt(0.02), 1e-15))
	g.Expect(lj.A).To(BeNumerically("~", 4*lj.Epsilon*math.Pow(3.3, 12), 1e-6))
	g.Expect(lj.B).To(BeNumerically("~", 4*lj.Epsilon*math.Pow(3.3, 6), 1e-9))
	g.Expect(lj.Scale).To(Equal(1.0))

	lj14 := CombineTypes(tables, 0, 1, true)
	g.Expect(lj14.Sigma).To(BeNumerically("~", 3.1, 1e-12))
	g.Expect(lj14.Epsilon).To(BeNumerically("~", math.Sqrt(0.005), 1e-15))
}

func TestNBFixTakesPrecedence(t *testing.T) {
	g := NewWithT(t)
	a := ff.AtomType{Name: "A", Sigma: 3.0, Epsilon: 0.1}
	b := ff.AtomType{Name: "B", Sigma: 3.6, Epsilon: 0.2}
	rmin := 4.0
	tables := pairTables(t, a, b, ff.NBFix{TypeA: "B", TypeB: "A", Rmin: rmin, Epsilon: 0.3, Rmin14: rmin, Epsilon14: 0.15})

	for _, order := range [][2]int{{0, 1}, {1, 0}} {
		lj := CombineTypes(tables, order[0], order[1], false)
		g.Expect(lj.Sigma).To(BeNumerically("~", rmin*math.Pow(2, -1.0/6), 1e-12))
		g.Expect(lj.Epsilon).To(Equal(0.3))

		lj14 := CombineTypes(tables, order[0], order[1], true)
		g.Expect(lj14.Epsilon).To(Equal(0.15))
	}

	// Same-type pairs still combine normally.
	g.Expect(CombineTypes(tables, 0, 0, false).Epsilon).To(BeNumerically("~", 0.1, 1e-15))
}

func TestResolvePairUsesOneFourTable(t *testing.T) {
	g := NewWithT(t)
	tables := chainTables(t, 0.5, 0.8333)

	lj := ResolvePair(tables, 0, 3)
	g.Expect(lj.Scale).To(Equal(0.5))
	g.Expect(lj.Sigma).To(BeNumerically("~", 3.2, 1e-12))
	g.Expect(ElecScale(tables, 0, 3)).To(Equal(0.8333))

	// Not a 1-4 pair: regular parameters and unit scales.
	lj = ResolvePair(tables, 0, 1)
	g.Expect(lj.Scale).To(Equal(1.0))
	g.Expect(lj.Sigma).To(BeNumerically("~", 3.4, 1e-12))
	g.Expect(ElecScale(tables, 0, 1)).To(Equal(1.0))
}
