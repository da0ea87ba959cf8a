package models

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/geom"
)

const (
	ccBond      = 1.526
	chBond      = 1.09
	tetrahedral = 109.5
)

// butaneDihedrals are the C-C-C-C angles of the built-in frames, in degrees.
var butaneDihedrals = []float64{180, 60, -60, 120, 0}

// NewButane returns all-atom n-butane with angles and dihedrals inferred from
// its bonds. Frames sweep the central dihedral from trans through cis.
func NewButane() *System {
	top := &ff.Topology{
		Types:   []string{"CT", "CT", "CT", "CT"},
		Charges: []float64{-0.18, -0.12, -0.12, -0.18},
		Bonds:   [][2]int{{0, 1}, {1, 2}, {2, 3}},
	}
	// Three hydrogens on each methyl, two on each methylene.
	for c, n := range []int{3, 2, 2, 3} {
		for k := 0; k < n; k++ {
			top.Bonds = append(top.Bonds, [2]int{c, len(top.Types)})
			top.Types = append(top.Types, "HC")
			top.Charges = append(top.Charges, 0.06)
		}
	}
	top.Angles = top.InferAngles()
	top.Dihedrals = top.InferDihedrals()

	frames := make([]ff.Frame, len(butaneDihedrals))
	for i, phi := range butaneDihedrals {
		frames[i] = ff.Frame{Coords: butaneCoords(phi)}
	}

	return &System{
		Name:        "butane",
		Description: "all-atom n-butane, central dihedral at 180, 60, -60, 120 and 0 degrees",
		Topology:    top,
		Params:      alkaneParams(),
		Frames:      frames,
	}
}

func butaneCoords(phi float64) []r3.Vec {
	c0 := r3.Vec{}
	c1 := r3.Vec{X: ccBond}
	theta := tetrahedral * ff.Deg2Rad
	c2 := r3.Add(c1, r3.Vec{X: -ccBond * math.Cos(theta), Y: ccBond * math.Sin(theta)})
	c3 := place(c0, c1, c2, ccBond, tetrahedral, phi)

	coords := []r3.Vec{c0, c1, c2, c3}
	for _, tau := range []float64{60, 180, 300} {
		coords = append(coords, place(c2, c1, c0, chBond, tetrahedral, tau))
	}
	back := geom.Dihedral(c3, c2, c1, c0, r3.Vec{}).Phi / ff.Deg2Rad
	for _, off := range []float64{120, -120} {
		coords = append(coords, place(c3, c2, c1, chBond, tetrahedral, back+off))
	}
	fwd := geom.Dihedral(c0, c1, c2, c3, r3.Vec{}).Phi / ff.Deg2Rad
	for _, off := range []float64{120, -120} {
		coords = append(coords, place(c0, c1, c2, chBond, tetrahedral, fwd+off))
	}
	for _, tau := range []float64{60, 180, 300} {
		coords = append(coords, place(c1, c2, c3, chBond, tetrahedral, tau))
	}
	return coords
}

// alkaneParams holds AMBER-style sp3 carbon and hydrogen parameters.
func alkaneParams() *ff.ParameterSet {
	prm := ff.NewParameterSet()
	prm.AddAtomType(ff.AtomType{Name: "CT", Sigma: 3.39967, Epsilon: 0.1094, Sigma14: 3.39967, Epsilon14: 0.1094})
	prm.AddAtomType(ff.AtomType{Name: "HC", Sigma: 2.64953, Epsilon: 0.0157, Sigma14: 2.64953, Epsilon14: 0.0157})

	prm.AddBond("CT", "CT", ff.BondType{K: 310, Req: ccBond})
	prm.AddBond("CT", "HC", ff.BondType{K: 340, Req: chBond})

	prm.AddAngle("CT", "CT", "CT", ff.AngleType{K: 40, Theteq: tetrahedral})
	prm.AddAngle("CT", "CT", "HC", ff.AngleType{K: 50, Theteq: tetrahedral})
	prm.AddAngle("HC", "CT", "HC", ff.AngleType{K: 35, Theteq: tetrahedral})

	prm.AddDihedral("X", "CT", "CT", "X", amber(0.1556, 0, 3))
	prm.AddDihedral("CT", "CT", "CT", "CT", amber(0.18, 0, 3), amber(0.25, 180, 2), amber(0.2, 180, 1))
	prm.AddDihedral("HC", "CT", "CT", "CT", amber(0.16, 0, 3))
	return prm
}

// amber returns a dihedral term with AMBER's 1-4 scaling: vdW halved and
// electrostatics divided by 1.2.
func amber(k, phase float64, per int) ff.DihedralTerm {
	return ff.DihedralTerm{K: k, Phase: phase, Per: per, VdWScale: 0.5, ElecScale: 1 / 1.2}
}
