package models

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
)

// place returns the point d with |d-c| = bond, angle b-c-d = angle and
// dihedral a-b-c-d = torsion. Angles are in degrees.
func place(a, b, c r3.Vec, bond, angle, torsion float64) r3.Vec {
	theta := angle * ff.Deg2Rad
	phi := torsion * ff.Deg2Rad

	bc := r3.Unit(r3.Sub(c, b))
	n := r3.Unit(r3.Cross(r3.Sub(b, a), bc))
	m := r3.Cross(n, bc)

	d := r3.Scale(-bond*math.Cos(theta), bc)
	d = r3.Add(d, r3.Scale(bond*math.Sin(theta)*math.Cos(phi), m))
	d = r3.Add(d, r3.Scale(bond*math.Sin(theta)*math.Sin(phi), n))
	return r3.Add(c, d)
}

// polar returns origin + r*(cos deg, sin deg, 0).
func polar(origin r3.Vec, r, deg float64) r3.Vec {
	a := deg * ff.Deg2Rad
	return r3.Add(origin, r3.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)})
}

// wrapInto maps p into [0, box) along every periodic axis.
func wrapInto(p, box r3.Vec) r3.Vec {
	return r3.Vec{X: wrapAxis(p.X, box.X), Y: wrapAxis(p.Y, box.Y), Z: wrapAxis(p.Z, box.Z)}
}

func wrapAxis(x, box float64) float64 {
	if box <= 0 {
		return x
	}
	return x - box*math.Floor(x/box)
}
