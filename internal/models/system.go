package models

import (
	"fmt"
	"sort"

	"github.com/san-kum/ffeval/internal/ff"
)

// System bundles everything one evaluation needs.
type System struct {
	Name        string
	Description string
	Topology    *ff.Topology
	Params      *ff.ParameterSet
	Frames      []ff.Frame
}

var builtins = map[string]func() *System{
	"water":     NewWater,
	"butane":    NewButane,
	"formamide": NewFormamide,
	"acetamide": NewAcetamide,
}

// Names lists the built-in systems in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get builds a fresh copy of a built-in system.
func Get(name string) (*System, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", name)
	}
	return fn(), nil
}
