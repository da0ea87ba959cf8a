package config

import "sort"

var Presets = map[string]*Config{
	"serial": {
		Backend: "serial",
	},
	"parallel": {
		Backend: "parallel",
		Workers: 0,
	},
	"batch": {
		Backend:        "serial",
		ParallelFrames: true,
	},
	"audit": {
		Backend: "serial",
		Metrics: []string{"decomposition_residual", "max_force", "rms_force", "stability"},
	},
}

// GetPreset returns a copy of the named preset layered over the defaults.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Backend = p.Backend
	cfg.Workers = p.Workers
	cfg.ParallelFrames = p.ParallelFrames
	cfg.Metrics = append([]string(nil), p.Metrics...)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
