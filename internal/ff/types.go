package ff

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Category is one of the six energy terms, in output order.
type Category int

const (
	Bond Category = iota
	VdW
	Elec
	Angle
	Dihedral
	Improper
)

// NumCategories is the number of energy categories.
const NumCategories = 6

var categoryNames = [NumCategories]string{"bond", "vdw", "elec", "angle", "dihedral", "improper"}

func (c Category) String() string {
	if c < 0 || int(c) >= NumCategories {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Categories returns all categories in output order.
func Categories() []Category {
	return []Category{Bond, VdW, Elec, Angle, Dihedral, Improper}
}

// ParseCategory resolves a category by its lower-case name.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Energies holds one value per category, indexed by Category.
type Energies [NumCategories]float64

// Total sums all categories.
func (e Energies) Total() float64 {
	sum := 0.0
	for _, v := range e {
		sum += v
	}
	return sum
}

// Add accumulates o into e.
func (e *Energies) Add(o Energies) {
	for i := range e {
		e[i] += o[i]
	}
}

// Frame is one snapshot: coordinates in Å and the periodic box edge lengths.
// A zero box edge disables wrapping along that axis.
type Frame struct {
	Coords []r3.Vec
	Box    r3.Vec
}

func (f Frame) Clone() Frame {
	c := make([]r3.Vec, len(f.Coords))
	copy(c, f.Coords)
	return Frame{Coords: c, Box: f.Box}
}

// IsValid reports whether all coordinates and box lengths are finite and the
// box lengths are not negative.
func (f Frame) IsValid() bool {
	if !finite(f.Box) || f.Box.X < 0 || f.Box.Y < 0 || f.Box.Z < 0 {
		return false
	}
	for _, c := range f.Coords {
		if !finite(c) {
			return false
		}
	}
	return true
}

func finite(v r3.Vec) bool {
	for _, x := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
