package physics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
)

// Accumulator collects the energies and forces of one frame. It is not safe
// for concurrent use; parallel kernels give each worker its own and Merge
// them afterwards.
type Accumulator struct {
	Energies     ff.Energies
	AtomEnergies []ff.Energies
	Forces       []r3.Vec
}

func NewAccumulator(numAtoms int) *Accumulator {
	return &Accumulator{
		AtomEnergies: make([]ff.Energies, numAtoms),
		Forces:       make([]r3.Vec, numAtoms),
	}
}

func (a *Accumulator) Len() int {
	return len(a.Forces)
}

func (a *Accumulator) Reset() {
	a.Energies = ff.Energies{}
	for i := range a.Forces {
		a.AtomEnergies[i] = ff.Energies{}
		a.Forces[i] = r3.Vec{}
	}
}

// Merge adds o into a. Both must cover the same atoms.
func (a *Accumulator) Merge(o *Accumulator) {
	a.Energies.Add(o.Energies)
	for i := range a.Forces {
		a.AtomEnergies[i].Add(o.AtomEnergies[i])
		a.Forces[i] = r3.Add(a.Forces[i], o.Forces[i])
	}
}

// deposit books pot in category c, split evenly over atoms.
func (a *Accumulator) deposit(c ff.Category, pot float64, atoms ...int) {
	a.Energies[c] += pot
	share := pot / float64(len(atoms))
	for _, i := range atoms {
		a.AtomEnergies[i][c] += share
	}
}
