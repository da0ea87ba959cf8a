package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/ffeval/internal/config"
	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/models"
	"github.com/san-kum/ffeval/internal/sim"
	"github.com/san-kum/ffeval/internal/stage"
)

// Experiment stages one system and evaluates its frames under a run
// configuration.
type Experiment struct {
	cfg       config.Config
	registry  *Registry
	logger    *slog.Logger
	system    *models.System
	evaluator *sim.Evaluator
}

func New(cfg config.Config, registry *Registry, logger *slog.Logger) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Experiment{cfg: cfg, registry: registry, logger: logger}
}

// Setup stages sys, or the configured system when sys is nil, and builds the
// evaluator with the configured backend and metrics.
func (e *Experiment) Setup(sys *models.System) error {
	if sys == nil {
		var err error
		if e.cfg.File != "" {
			sys, err = models.LoadFile(e.cfg.File)
		} else {
			sys, err = e.registry.GetSystem(e.cfg.System)
		}
		if err != nil {
			return err
		}
	}

	tables, err := stage.Stage(sys.Topology, sys.Params)
	if err != nil {
		return fmt.Errorf("stage %s: %w", sys.Name, err)
	}
	e.logger.Info("staged system", "system", sys.Name, "summary", tables.Summary())

	backend, err := e.registry.GetBackend(e.cfg.Backend, tables.NumAtoms, e.cfg.Workers)
	if err != nil {
		return err
	}
	ms, err := e.registry.GetMetrics(e.cfg.Metrics)
	if err != nil {
		return err
	}

	e.system = sys
	e.evaluator = sim.New(tables, backend)
	for _, m := range ms {
		e.evaluator.AddMetric(m)
	}
	e.evaluator.AddObserver(frameLogger{e.logger})
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.evaluator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	simCfg := sim.Config{
		ParallelFrames: e.cfg.ParallelFrames,
		Workers:        e.cfg.Workers,
	}
	result, err := e.evaluator.Run(ctx, e.system.Frames, simCfg)
	if err != nil {
		return nil, err
	}
	e.logger.Info("evaluated frames",
		"system", e.system.Name,
		"frames", result.NumFrames(),
		"backend", result.Backend,
		"parallel_frames", simCfg.ParallelFrames,
		"elapsed", result.Elapsed,
	)
	return result, nil
}

// GetEvaluator returns the underlying evaluator for adding observers.
func (e *Experiment) GetEvaluator() *sim.Evaluator {
	return e.evaluator
}

func (e *Experiment) System() *models.System {
	return e.system
}

type frameLogger struct {
	logger *slog.Logger
}

func (l frameLogger) OnFrame(fr sim.FrameResult) {
	if !l.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []any{"frame", fr.Index, "total", fr.Total()}
	for i, v := range fr.Energies {
		attrs = append(attrs, ff.Category(i).String(), v)
	}
	l.logger.Debug("frame", attrs...)
}
