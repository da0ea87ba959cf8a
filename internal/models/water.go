package models

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
)

const (
	tip3pBond  = 0.9572
	tip3pAngle = 104.52
)

// NewWater returns three TIP3P waters in a 10 Å box. The third molecule
// straddles the x boundary, so bonded vectors need wrapping.
func NewWater() *System {
	top := &ff.Topology{}
	for m := 0; m < 3; m++ {
		o := len(top.Types)
		top.Types = append(top.Types, "OW", "HW", "HW")
		top.Charges = append(top.Charges, -0.834, 0.417, 0.417)
		top.Bonds = append(top.Bonds, [2]int{o, o + 1}, [2]int{o, o + 2})
		top.Angles = append(top.Angles, [3]int{o + 1, o, o + 2})
	}

	prm := ff.NewParameterSet()
	prm.AddAtomType(ff.AtomType{Name: "OW", Sigma: 3.15061, Epsilon: 0.1521, Sigma14: 3.15061, Epsilon14: 0.1521})
	prm.AddAtomType(ff.AtomType{Name: "HW"})
	prm.AddBond("OW", "HW", ff.BondType{K: 553, Req: tip3pBond})
	prm.AddAngle("HW", "OW", "HW", ff.AngleType{K: 100, Theteq: tip3pAngle})

	box := r3.Vec{X: 10, Y: 10, Z: 10}
	oxygens := []r3.Vec{{X: 1.0, Y: 1.0, Z: 1.0}, {X: 4.3, Y: 1.6, Z: 2.2}, {X: 9.6, Y: 5.0, Z: 5.0}}
	orient := []float64{20, 150, -30}

	var frames []ff.Frame
	for k := 0; k < 3; k++ {
		f := ff.Frame{Box: box}
		for m, o := range oxygens {
			o = r3.Add(o, r3.Vec{Y: 0.08 * float64(k*(m+1))})
			stretch := 1 + 0.02*float64(k-1)
			rot := orient[m] + 7*float64(k)
			h1 := polar(o, tip3pBond*stretch, rot)
			h2 := polar(o, tip3pBond, rot+tip3pAngle+3*float64(k-1))
			f.Coords = append(f.Coords, o, wrapInto(h1, box), wrapInto(h2, box))
		}
		frames = append(frames, f)
	}

	return &System{
		Name:        "water",
		Description: "three TIP3P waters in a periodic 10 Å box",
		Topology:    top,
		Params:      prm,
		Frames:      frames,
	}
}
