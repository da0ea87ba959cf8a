package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Wrap returns the minimum-image value of the displacement component d for a
// periodic box edge of length box.
func Wrap(d, box float64) float64 {
	if box <= 0 {
		return d
	}
	return d - box*math.Round(d/box)
}

// WrapBonded wraps a bonded-vector component with the same minimum-image
// rule as Wrap, so partners stored several images apart still resolve.
func WrapBonded(d, box float64) float64 {
	return Wrap(d, box)
}

// Delta returns the wrapped displacement a-b.
func Delta(a, b, box r3.Vec) r3.Vec {
	return r3.Vec{
		X: Wrap(a.X-b.X, box.X),
		Y: Wrap(a.Y-b.Y, box.Y),
		Z: Wrap(a.Z-b.Z, box.Z),
	}
}

// BondedDelta returns the displacement a-b wrapped with WrapBonded.
func BondedDelta(a, b, box r3.Vec) r3.Vec {
	return r3.Vec{
		X: WrapBonded(a.X-b.X, box.X),
		Y: WrapBonded(a.Y-b.Y, box.Y),
		Z: WrapBonded(a.Z-b.Z, box.Z),
	}
}
