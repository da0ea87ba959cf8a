package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/ffeval/internal/compute"
	"github.com/san-kum/ffeval/internal/metrics"
	"github.com/san-kum/ffeval/internal/models"
	"github.com/san-kum/ffeval/internal/sim"
)

// Registry resolves the names a run configuration refers to.
type Registry struct {
	systems map[string]func() *models.System
}

func NewRegistry() *Registry {
	r := &Registry{systems: make(map[string]func() *models.System)}
	for _, name := range models.Names() {
		name := name
		r.systems[name] = func() *models.System {
			sys, _ := models.Get(name)
			return sys
		}
	}
	return r
}

// Register adds or replaces a system constructor.
func (r *Registry) Register(name string, fn func() *models.System) {
	r.systems[name] = fn
}

func (r *Registry) GetSystem(name string) (*models.System, error) {
	fn, ok := r.systems[name]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", name)
	}
	return fn(), nil
}

// GetBackend resolves a backend name. "auto" or an empty name picks by
// system size.
func (r *Registry) GetBackend(name string, numAtoms, workers int) (compute.Backend, error) {
	if name == "" || name == "auto" {
		return compute.AutoSelectBackend(numAtoms, workers), nil
	}
	return compute.NewBackend(name, workers)
}

func (r *Registry) GetMetrics(names []string) ([]sim.Metric, error) {
	if len(names) == 0 {
		names = metrics.Default()
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := metrics.ByName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListSystems() []string {
	names := make([]string, 0, len(r.systems))
	for name := range r.systems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListBackends() []string {
	return append([]string{"auto"}, compute.Backends()...)
}
