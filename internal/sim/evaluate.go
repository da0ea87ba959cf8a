package sim

import (
	"context"

	"github.com/san-kum/ffeval/internal/compute"
	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/stage"
)

// Evaluate stages top and prm and evaluates every frame with an
// automatically selected backend.
func Evaluate(ctx context.Context, top *ff.Topology, prm *ff.ParameterSet, frames []ff.Frame, cfg Config) (*Result, error) {
	tables, err := stage.Stage(top, prm)
	if err != nil {
		return nil, err
	}
	return New(tables, compute.AutoSelectBackend(tables.NumAtoms, cfg.Workers)).Run(ctx, frames, cfg)
}
