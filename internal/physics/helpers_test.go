package physics

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/stage"
)

// chainTables stages a four-atom chain 0-1-2-3 of type C with one proper
// dihedral, so (0, 3) is a 1-4 pair and (0, 2), (1, 3) are 1-3 exclusions.
func chainTables(t *testing.T, vdwScale, elecScale float64) *stage.Tables {
	t.Helper()
	top := &ff.Topology{
		Types:     []string{"C", "C", "C", "C"},
		Charges:   []float64{0.2, -0.1, -0.1, 0.3},
		Bonds:     [][2]int{{0, 1}, {1, 2}, {2, 3}},
		Angles:    [][3]int{{0, 1, 2}, {1, 2, 3}},
		Dihedrals: [][4]int{{0, 1, 2, 3}},
	}
	prm := ff.NewParameterSet()
	prm.AddAtomType(ff.AtomType{Name: "C", Sigma: 3.4, Epsilon: 0.1, Sigma14: 3.2, Epsilon14: 0.05})
	prm.AddBond("C", "C", ff.BondType{K: 310, Req: 1.526})
	prm.AddAngle("C", "C", "C", ff.AngleType{K: 40, Theteq: 109.5})
	prm.AddDihedral("C", "C", "C", "C", ff.DihedralTerm{K: 0.2, Phase: 0, Per: 3, VdWScale: vdwScale, ElecScale: elecScale})

	tables, err := stage.Stage(top, prm)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	return tables
}

// pairTables stages two unbonded atoms of types A and B.
func pairTables(t *testing.T, a, b ff.AtomType, fixes ...ff.NBFix) *stage.Tables {
	t.Helper()
	top := &ff.Topology{Types: []string{a.Name, b.Name}, Charges: []float64{0, 0}}
	prm := ff.NewParameterSet()
	prm.AddAtomType(a)
	prm.AddAtomType(b)
	for _, f := range fixes {
		prm.AddNBFix(f)
	}
	tables, err := stage.Stage(top, prm)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	return tables
}

func frameOf(coords ...r3.Vec) ff.Frame {
	return ff.Frame{Coords: coords}
}

// numericGradient differentiates energy by central differences.
func numericGradient(pos []r3.Vec, energy func([]r3.Vec) float64, h float64) []r3.Vec {
	grad := make([]r3.Vec, len(pos))
	p := make([]r3.Vec, len(pos))
	for i := range pos {
		for axis := 0; axis < 3; axis++ {
			copy(p, pos)
			set(&p[i], axis, get(pos[i], axis)+h)
			ep := energy(p)
			set(&p[i], axis, get(pos[i], axis)-h)
			em := energy(p)
			set(&grad[i], axis, (ep-em)/(2*h))
		}
	}
	return grad
}

func get(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

func set(v *r3.Vec, axis int, x float64) {
	switch axis {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	default:
		v.Z = x
	}
}
