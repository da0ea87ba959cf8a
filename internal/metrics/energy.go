package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/sim"
)

// EnergyStats collects one energy series, either a single category or the
// total, and reports its mean or standard deviation.
type EnergyStats struct {
	name     string
	category ff.Category
	total    bool
	std      bool
	samples  []float64
}

// NewEnergyMean tracks the mean total energy.
func NewEnergyMean() *EnergyStats {
	return &EnergyStats{name: "energy_mean", total: true}
}

// NewEnergyStd tracks the standard deviation of the total energy.
func NewEnergyStd() *EnergyStats {
	return &EnergyStats{name: "energy_std", total: true, std: true}
}

// NewCategoryMean tracks the mean energy of one category.
func NewCategoryMean(c ff.Category) *EnergyStats {
	return &EnergyStats{name: "energy_mean:" + c.String(), category: c}
}

// NewCategoryStd tracks the standard deviation of one category.
func NewCategoryStd(c ff.Category) *EnergyStats {
	return &EnergyStats{name: "energy_std:" + c.String(), category: c, std: true}
}

func (e *EnergyStats) Name() string { return e.name }

func (e *EnergyStats) Observe(fr sim.FrameResult) {
	if e.total {
		e.samples = append(e.samples, fr.Total())
		return
	}
	e.samples = append(e.samples, fr.Energies[e.category])
}

func (e *EnergyStats) Value() float64 {
	if len(e.samples) == 0 {
		return 0
	}
	mean, std := stat.MeanStdDev(e.samples, nil)
	if !e.std {
		return mean
	}
	if len(e.samples) < 2 {
		return 0
	}
	return std
}

func (e *EnergyStats) Reset() {
	e.samples = e.samples[:0]
}

// EnergyDrift is the largest absolute change of the total energy relative to
// the first frame.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(fr sim.FrameResult) {
	energy := fr.Total()
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++
	e.maxDrift = math.Max(e.maxDrift, math.Abs(energy-e.initialEnergy))
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
