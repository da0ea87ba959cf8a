package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ffeval/internal/config"
	"github.com/san-kum/ffeval/internal/experiment"
	"github.com/san-kum/ffeval/internal/sim"
	"github.com/san-kum/ffeval/internal/storage"
)

// Scenario is a scripted sequence of evaluations.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one evaluation. Empty fields fall back to the defaults.
type ScenarioStep struct {
	System         string   `yaml:"system"`
	File           string   `yaml:"file"`
	Backend        string   `yaml:"backend"`
	Workers        int      `yaml:"workers"`
	ParallelFrames bool     `yaml:"parallel_frames"`
	Metrics        []string `yaml:"metrics"`
	Save           bool     `yaml:"save"`
}

// StepResult pairs a step with its outcome. RunID is empty unless the step
// was saved.
type StepResult struct {
	Step   ScenarioStep
	System string
	Result *sim.Result
	RunID  string
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config converts a step into a run configuration.
func (s ScenarioStep) Config() config.Config {
	cfg := *config.DefaultConfig()
	if s.System != "" {
		cfg.System = s.System
	}
	if s.Backend != "" {
		cfg.Backend = s.Backend
	}
	cfg.File = s.File
	cfg.Workers = s.Workers
	cfg.ParallelFrames = s.ParallelFrames
	cfg.Metrics = s.Metrics
	return cfg
}

// RunScenario executes all steps in order. Steps with Save set are written
// to st, which may be nil when no step saves. On error the results of the
// completed steps are returned with it.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, st *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg := step.Config()
		logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "system", cfg.System)

		exp := experiment.New(cfg, registry, logger)
		if err := exp.Setup(nil); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: step, System: exp.System().Name, Result: result}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: no store to save to", i+1)
			}
			sr.RunID, err = st.Save(storage.RunMetadata{
				System:         sr.System,
				Workers:        cfg.Workers,
				ParallelFrames: cfg.ParallelFrames,
			}, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}
