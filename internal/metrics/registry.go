package metrics

import (
	"fmt"
	"strings"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/sim"
)

// DefaultStabilityThreshold is the force norm, in kcal/(mol Å), above which
// a frame counts as unstable.
const DefaultStabilityThreshold = 1e4

// Default lists the metrics a run collects when none are configured.
func Default() []string {
	return []string{"energy_mean", "energy_std", "max_force", "decomposition_residual"}
}

// ByName builds a metric. energy_mean and energy_std take an optional
// ":<category>" suffix.
func ByName(name string) (sim.Metric, error) {
	base, cat, hasCat := strings.Cut(name, ":")
	if hasCat {
		c, err := ff.ParseCategory(cat)
		if err != nil {
			return nil, err
		}
		switch base {
		case "energy_mean":
			return NewCategoryMean(c), nil
		case "energy_std":
			return NewCategoryStd(c), nil
		}
		return nil, fmt.Errorf("metric %s does not take a category", base)
	}

	switch name {
	case "energy_mean":
		return NewEnergyMean(), nil
	case "energy_std":
		return NewEnergyStd(), nil
	case "energy_drift":
		return NewEnergyDrift(), nil
	case "max_force":
		return NewMaxForce(), nil
	case "rms_force":
		return NewRMSForce(), nil
	case "decomposition_residual":
		return NewDecompositionResidual(), nil
	case "stability":
		return NewStability(DefaultStabilityThreshold), nil
	}
	return nil, fmt.Errorf("unknown metric: %s", name)
}
