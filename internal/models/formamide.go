package models

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
)

// amideAtoms lays out one planar amide head around the carbonyl carbon:
// angles from +x in the molecular plane and the bond length to the parent.
var amideAtoms = []struct {
	typ    string
	charge float64
	parent int
	bond   float64
	deg    float64
}{
	{"C", 0.5973, -1, 0, 0},
	{"O", -0.5679, 0, 1.229, 90},
	{"H4", 0.0, 0, 1.1, 210},
	{"N", -0.9157, 0, 1.335, -32.9},
	{"H", 0.4157, 3, 1.01, 267.1},
	{"H", 0.4157, 3, 1.01, 27.1},
}

// NewFormamide returns a stacked formamide dimer in a 20 Å box. Each
// carbonyl carries a harmonic improper and O-H contacts use an NBFIX.
func NewFormamide() *System {
	top := &ff.Topology{}
	var base []r3.Vec
	for m := 0; m < 2; m++ {
		off := len(top.Types)
		shift := r3.Vec{Z: 3.5 * float64(m)}
		for i, a := range amideAtoms {
			top.Types = append(top.Types, a.typ)
			top.Charges = append(top.Charges, a.charge)
			if a.parent < 0 {
				base = append(base, shift)
				continue
			}
			top.Bonds = append(top.Bonds, [2]int{off + a.parent, off + i})
			base = append(base, polar(base[off+a.parent], a.bond, a.deg))
		}
		top.Impropers = append(top.Impropers, [4]int{off + 2, off + 3, off, off + 1})
	}
	top.Angles = top.InferAngles()
	top.Dihedrals = top.InferDihedrals()

	prm := amideParams()
	prm.AddAtomType(ff.AtomType{Name: "H4", Sigma: 2.51055, Epsilon: 0.015, Sigma14: 2.51055, Epsilon14: 0.015})
	prm.AddBond("C", "H4", ff.BondType{K: 367, Req: 1.1})
	prm.AddAngle("H4", "C", "O", ff.AngleType{K: 50, Theteq: 120})
	prm.AddAngle("H4", "C", "N", ff.AngleType{K: 50, Theteq: 120})
	prm.AddImproper("H4", "N", "C", "O", ff.ImproperType{K: 10.5, PsiEq: 180})

	// Out-of-plane displacements of the formyl H and one N-H per frame.
	pucker := []float64{0, 0.12, -0.2, 0.3}
	box := r3.Vec{X: 20, Y: 20, Z: 20}
	frames := make([]ff.Frame, len(pucker))
	for k, dz := range pucker {
		coords := append([]r3.Vec(nil), base...)
		coords[2] = r3.Add(coords[2], r3.Vec{Z: dz})
		coords[4] = r3.Add(coords[4], r3.Vec{Z: -0.5 * dz})
		coords[7] = r3.Add(coords[6+1], r3.Vec{X: 0.05 * float64(k)})
		frames[k] = ff.Frame{Coords: coords, Box: box}
	}

	return &System{
		Name:        "formamide",
		Description: "stacked formamide dimer with a harmonic carbonyl improper",
		Topology:    top,
		Params:      prm,
		Frames:      frames,
	}
}

// amideParams holds the carbonyl and amide parameters shared by the amide
// systems.
func amideParams() *ff.ParameterSet {
	prm := ff.NewParameterSet()
	prm.AddAtomType(ff.AtomType{Name: "C", Sigma: 3.39967, Epsilon: 0.086, Sigma14: 3.39967, Epsilon14: 0.086})
	prm.AddAtomType(ff.AtomType{Name: "O", Sigma: 2.95992, Epsilon: 0.21, Sigma14: 2.95992, Epsilon14: 0.21})
	prm.AddAtomType(ff.AtomType{Name: "N", Sigma: 3.25, Epsilon: 0.17, Sigma14: 3.25, Epsilon14: 0.17})
	prm.AddAtomType(ff.AtomType{Name: "H", Sigma: 1.06908, Epsilon: 0.0157, Sigma14: 1.06908, Epsilon14: 0.0157})
	prm.AddNBFix(ff.NBFix{TypeA: "O", TypeB: "H", Rmin: 2.0, Epsilon: 0.05, Rmin14: 2.2, Epsilon14: 0.02})

	prm.AddBond("C", "O", ff.BondType{K: 570, Req: 1.229})
	prm.AddBond("C", "N", ff.BondType{K: 490, Req: 1.335})
	prm.AddBond("N", "H", ff.BondType{K: 434, Req: 1.01})

	prm.AddAngle("O", "C", "N", ff.AngleType{K: 80, Theteq: 122.9})
	prm.AddAngle("C", "N", "H", ff.AngleType{K: 50, Theteq: 120})
	prm.AddAngle("H", "N", "H", ff.AngleType{K: 35, Theteq: 120})

	prm.AddDihedral("X", "C", "N", "X", amber(2.5, 180, 2))
	prm.AddDihedral("H", "N", "C", "O", amber(2.5, 180, 2), amber(2.0, 0, 1))
	return prm
}
