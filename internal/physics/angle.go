package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/geom"
	"github.com/san-kum/ffeval/internal/stage"
)

// HarmonicAngle evaluates k*(theta-theta0)^2 for the vertex-relative bond
// vectors r21 (end 0 minus vertex) and r23 (end 2 minus vertex). It returns
// the force on each of the three atoms. At theta = 0 or pi the force is zero.
func HarmonicAngle(k, theta0 float64, r21, r23 r3.Vec) (pot float64, f0, f1, f2 r3.Vec) {
	n21 := r3.Norm(r21)
	n23 := r3.Norm(r23)
	cos := r3.Dot(r21, r23) / (n21 * n23)
	cos = math.Max(-1, math.Min(1, cos))
	theta := math.Acos(cos)
	delta := theta - theta0
	pot = k * delta * delta

	sin := math.Sqrt(1 - cos*cos)
	if sin == 0 {
		return pot, r3.Vec{}, r3.Vec{}, r3.Vec{}
	}
	coef := -2 * k * delta / sin

	u21 := r3.Scale(1/n21, r21)
	u23 := r3.Scale(1/n23, r23)
	f0 = r3.Scale(coef/n21, r3.Sub(r3.Scale(cos, u21), u23))
	f2 = r3.Scale(coef/n23, r3.Sub(r3.Scale(cos, u23), u21))
	f1 = r3.Scale(-1, r3.Add(f0, f2))
	return pot, f0, f1, f2
}

// EvaluateAngle adds angle n of t to acc.
func EvaluateAngle(t *stage.Tables, f ff.Frame, n int, acc *Accumulator) {
	a := t.Angles[n]
	p := t.AngleParams[n]
	r21 := geom.BondedDelta(f.Coords[a[0]], f.Coords[a[1]], f.Box)
	r23 := geom.BondedDelta(f.Coords[a[2]], f.Coords[a[1]], f.Box)

	pot, f0, f1, f2 := HarmonicAngle(p[0], p[1], r21, r23)
	acc.deposit(ff.Angle, pot, a[0], a[1], a[2])
	acc.Forces[a[0]] = r3.Add(acc.Forces[a[0]], f0)
	acc.Forces[a[1]] = r3.Add(acc.Forces[a[1]], f1)
	acc.Forces[a[2]] = r3.Add(acc.Forces[a[2]], f2)
}
