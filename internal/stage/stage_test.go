package stage_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/stage"
)

// fixture is a five-atom fragment HC(0)-CT(1)-CT(2)-OH(3) with a second
// hydrogen HC(4) on atom 1. Some index tuples are written high-to-low on
// purpose.
func fixture() (*ff.Topology, *ff.ParameterSet) {
	top := &ff.Topology{
		Types:     []string{"HC", "CT", "CT", "OH", "HC"},
		Charges:   []float64{0.06, -0.1, 0.15, -0.65, 0.06},
		Bonds:     [][2]int{{1, 0}, {1, 2}, {2, 3}, {4, 1}},
		Angles:    [][3]int{{0, 1, 2}, {0, 1, 4}, {2, 1, 4}, {3, 2, 1}},
		Dihedrals: [][4]int{{0, 1, 2, 3}, {4, 1, 2, 3}, {3, 2, 1, 0}},
		Impropers: [][4]int{{0, 2, 1, 4}, {0, 3, 2, 1}},
	}

	prm := ff.NewParameterSet()
	prm.AddAtomType(ff.AtomType{Name: "HC", Sigma: 2.65, Epsilon: 0.0157, Sigma14: 2.65, Epsilon14: 0.0078})
	prm.AddAtomType(ff.AtomType{Name: "CT", Sigma: 3.4, Epsilon: 0.1094, Sigma14: 3.4, Epsilon14: 0.05})
	prm.AddAtomType(ff.AtomType{Name: "OH", Sigma: 3.07, Epsilon: 0.21, Sigma14: 3.07, Epsilon14: 0.1})
	prm.AddAtomType(ff.AtomType{Name: "N", Sigma: 3.25, Epsilon: 0.17})
	prm.AddNBFix(ff.NBFix{TypeA: "OH", TypeB: "CT", Rmin: 3.5, Epsilon: 0.15, Rmin14: 3.4, Epsilon14: 0.1})
	prm.AddNBFix(ff.NBFix{TypeA: "N", TypeB: "CT", Rmin: 3.6, Epsilon: 0.2})

	prm.AddBond("CT", "HC", ff.BondType{K: 340, Req: 1.09})
	prm.AddBond("CT", "CT", ff.BondType{K: 310, Req: 1.526})
	prm.AddBond("CT", "OH", ff.BondType{K: 320, Req: 1.41})

	prm.AddAngle("HC", "CT", "CT", ff.AngleType{K: 50, Theteq: 109.5})
	prm.AddAngle("HC", "CT", "HC", ff.AngleType{K: 35, Theteq: 109.5})
	prm.AddAngle("CT", "CT", "OH", ff.AngleType{K: 50, Theteq: 109.5})

	prm.AddDihedral("HC", "CT", "CT", "OH",
		ff.DihedralTerm{K: 0.25, Phase: 0, Per: 1, VdWScale: 0.5, ElecScale: 0.8333},
		ff.DihedralTerm{K: 0.16, Phase: 0, Per: 3, VdWScale: 0.9, ElecScale: 0.9},
	)

	prm.AddImproper("CT", "CT", "HC", "HC", ff.ImproperType{K: 10, PsiEq: 180})
	prm.AddPeriodicImproper("CT", "CT", "HC", "OH", ff.PeriodicImproper{K: 1.1, Phase: 180, Per: 2})
	return top, prm
}

var _ = Describe("Stage", func() {
	var (
		top *ff.Topology
		prm *ff.ParameterSet
	)

	BeforeEach(func() {
		top, prm = fixture()
	})

	Context("with a complete parameter set", func() {
		var t *stage.Tables

		BeforeEach(func() {
			var err error
			t, err = stage.Stage(top, prm)
			Expect(err).NotTo(HaveOccurred())
		})

		It("indexes distinct types in sorted order", func() {
			Expect(t.TypeNames).To(Equal([]string{"CT", "HC", "OH"}))
			Expect(t.TypeIndex).To(Equal([]int{1, 0, 0, 2, 1}))
			Expect(t.Epsilon14[0]).To(Equal(0.05))
		})

		It("keeps only overrides whose types are present", func() {
			Expect(t.NBFix).To(HaveLen(1))
			fix := t.NBFix[0]
			Expect([]int{fix.TypeA, fix.TypeB}).To(ConsistOf(0, 2))
			Expect(fix.Sigma).To(BeNumerically("~", 3.5*math.Pow(2, -1.0/6), 1e-12))
			Expect(fix.Sigma14).To(BeNumerically("~", 3.4*math.Pow(2, -1.0/6), 1e-12))
			Expect(fix.Epsilon).To(Equal(0.15))
		})

		It("builds ascending exclusions under the lower index", func() {
			Expect(t.Exclusions.Row(0)).To(Equal([]int{1, 2, 4}))
			Expect(t.Exclusions.Row(1)).To(Equal([]int{2, 3, 4}))
			Expect(t.Exclusions.Row(2)).To(Equal([]int{3, 4}))
			Expect(t.Exclusions.Row(3)).To(BeEmpty())
			Expect(t.Exclusions.Row(4)).To(BeEmpty())
			Expect(t.Exclusions.Width()).To(Equal(3))
		})

		It("stores bond constants by type next to the upper partner", func() {
			Expect(t.BondAtoms.Row(1)).To(Equal([]int{2, 4}))
			Expect(t.BondParams.At(1, 0)).To(Equal(310.0))
			Expect(t.BondParams.At(1, 1)).To(Equal(1.526))
			Expect(t.BondParams.At(1, 2)).To(Equal(340.0))
			Expect(t.BondParams.At(1, 3)).To(Equal(1.09))
			Expect(t.BondAtoms.Find(4, 1)).To(Equal(-1))
			Expect(t.BondParams.Width()).To(Equal(2 * t.BondAtoms.Width()))
		})

		It("converts angle equilibria to radians", func() {
			Expect(t.AngleParams[0][0]).To(Equal(50.0))
			Expect(t.AngleParams[0][1]).To(BeNumerically("~", 109.5*math.Pi/180, 1e-15))
		})

		It("registers each 1-4 pair once with the first term's scales", func() {
			Expect(t.VdW14Atoms.Row(0)).To(Equal([]int{3}))
			Expect(t.VdW14Scale.At(0, 0)).To(Equal(0.5))
			Expect(t.Elec14Atoms.Row(0)).To(Equal([]int{3}))
			Expect(t.Elec14Scale.At(0, 0)).To(Equal(0.8333))
			Expect(t.VdW14Atoms.Row(3)).To(Equal([]int{4}))
		})

		It("appends every periodic term of a dihedral", func() {
			row := t.DihedralParams.Row(0)
			Expect(row).To(HaveLen(6))
			Expect(row[:3]).To(Equal([]float64{0.25, 0, 1}))
			Expect(row[3:]).To(Equal([]float64{0.16, 0, 3}))
		})

		It("prefers harmonic impropers and falls back to periodic ones", func() {
			Expect(t.ImproperParams.At(0, 0)).To(Equal(10.0))
			Expect(t.ImproperParams.At(0, 1)).To(BeNumerically("~", math.Pi, 1e-15))
			Expect(t.ImproperParams.At(0, 2)).To(Equal(0.0))

			Expect(t.ImproperParams.At(1, 0)).To(Equal(1.1))
			Expect(t.ImproperParams.At(1, 2)).To(Equal(2.0))
		})

		It("summarizes the staged sizes", func() {
			s := t.Summary()
			Expect(s.Atoms).To(Equal(5))
			Expect(s.Bonds).To(Equal(4))
			Expect(s.Pairs14).To(Equal(2))
			Expect(s.TorsionWidth).To(Equal(2))
		})
	})

	DescribeTable("reports missing parameters",
		func(mutate func(*ff.Topology, *ff.ParameterSet) *ff.ParameterSet, sentinel error, term string, index int) {
			p := mutate(top, prm)
			_, err := stage.Stage(top, p)
			Expect(err).To(MatchError(sentinel))

			var perr *ff.ParameterError
			Expect(err).To(BeAssignableToTypeOf(perr))
			Expect(err.(*ff.ParameterError).Term).To(Equal(term))
			Expect(err.(*ff.ParameterError).Index).To(Equal(index))
		},
		Entry("atom type reports the first atom of that type", func(top *ff.Topology, p *ff.ParameterSet) *ff.ParameterSet {
			top.Types[3] = "OS"
			top.Types[4] = "OS"
			return p
		}, ff.ErrMissingTypeParameter, "atom", 3),
		Entry("bond", func(top *ff.Topology, p *ff.ParameterSet) *ff.ParameterSet {
			top.Bonds = append(top.Bonds, [2]int{0, 3})
			return p
		}, ff.ErrMissingBondParameter, "bond", 4),
		Entry("angle", func(top *ff.Topology, p *ff.ParameterSet) *ff.ParameterSet {
			top.Angles = append(top.Angles, [3]int{0, 3, 4})
			return p
		}, ff.ErrMissingAngleParameter, "angle", 4),
		Entry("dihedral", func(top *ff.Topology, p *ff.ParameterSet) *ff.ParameterSet {
			top.Dihedrals = append(top.Dihedrals, [4]int{0, 1, 2, 4})
			return p
		}, ff.ErrMissingDihedralParameter, "dihedral", 3),
		Entry("improper", func(top *ff.Topology, p *ff.ParameterSet) *ff.ParameterSet {
			top.Impropers = append(top.Impropers, [4]int{0, 1, 3, 4})
			return p
		}, ff.ErrMissingImproperParameter, "improper", 2),
	)

	It("rejects out-of-range indices", func() {
		top.Angles = append(top.Angles, [3]int{0, 1, 7})
		_, err := stage.Stage(top, prm)
		Expect(err).To(MatchError(ff.ErrMalformedTopology))
	})
})
