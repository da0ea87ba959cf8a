package models

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
)

// NewAcetamide returns a single acetamide with periodic impropers on the
// carbonyl carbon and the amide nitrogen. The box is open.
func NewAcetamide() *System {
	top := &ff.Topology{}
	var base []r3.Vec
	for i, a := range amideAtoms {
		typ, charge := a.typ, a.charge
		if typ == "H4" {
			typ, charge = "CT", -0.3662
		}
		top.Types = append(top.Types, typ)
		top.Charges = append(top.Charges, charge)
		if a.parent < 0 {
			base = append(base, r3.Vec{})
			continue
		}
		bond := a.bond
		if typ == "CT" {
			bond = 1.522
		}
		top.Bonds = append(top.Bonds, [2]int{a.parent, i})
		base = append(base, polar(base[a.parent], bond, a.deg))
	}

	// Methyl hydrogens on atom 2, staggered against the carbonyl oxygen.
	for _, tau := range []float64{0, 120, 240} {
		top.Types = append(top.Types, "HC")
		top.Charges = append(top.Charges, 0.1123)
		top.Bonds = append(top.Bonds, [2]int{2, len(base)})
		base = append(base, place(base[1], base[0], base[2], chBond, tetrahedral, tau))
	}
	top.Angles = top.InferAngles()
	top.Dihedrals = top.InferDihedrals()
	top.Impropers = [][4]int{{2, 3, 0, 1}, {0, 4, 3, 5}}

	prm := amideParams()
	prm.AddAtomType(ff.AtomType{Name: "CT", Sigma: 3.39967, Epsilon: 0.1094, Sigma14: 3.39967, Epsilon14: 0.1094})
	prm.AddAtomType(ff.AtomType{Name: "HC", Sigma: 2.64953, Epsilon: 0.0157, Sigma14: 2.64953, Epsilon14: 0.0157})
	prm.AddBond("C", "CT", ff.BondType{K: 317, Req: 1.522})
	prm.AddBond("CT", "HC", ff.BondType{K: 340, Req: chBond})
	prm.AddAngle("CT", "C", "O", ff.AngleType{K: 80, Theteq: 120.4})
	prm.AddAngle("CT", "C", "N", ff.AngleType{K: 70, Theteq: 116.6})
	prm.AddAngle("C", "CT", "HC", ff.AngleType{K: 50, Theteq: tetrahedral})
	prm.AddAngle("HC", "CT", "HC", ff.AngleType{K: 35, Theteq: tetrahedral})
	prm.AddDihedral("X", "C", "CT", "X", amber(0.05, 0, 3))
	prm.AddDihedral("HC", "CT", "C", "O", amber(0.8, 0, 1), amber(0.08, 180, 3))
	prm.AddPeriodicImproper("CT", "N", "C", "O", ff.PeriodicImproper{K: 10.5, Phase: 180, Per: 2})
	prm.AddPeriodicImproper("C", "H", "N", "H", ff.PeriodicImproper{K: 1.1, Phase: 180, Per: 2})

	twist := []float64{0, 8, -15}
	frames := make([]ff.Frame, len(twist))
	for k, deg := range twist {
		coords := append([]r3.Vec(nil), base...)
		// Rotate the methyl about the C-CT bond and lift the amide hydrogens.
		for h := 6; h < 9; h++ {
			coords[h] = place(base[1], base[0], base[2], chBond, tetrahedral, float64(h-6)*120+deg)
		}
		coords[4] = r3.Add(coords[4], r3.Vec{Z: 0.01 * deg})
		coords[5] = r3.Add(coords[5], r3.Vec{Z: -0.006 * deg})
		frames[k] = ff.Frame{Coords: coords}
	}

	return &System{
		Name:        "acetamide",
		Description: "acetamide with periodic carbonyl and amide impropers",
		Topology:    top,
		Params:      prm,
		Frames:      frames,
	}
}
