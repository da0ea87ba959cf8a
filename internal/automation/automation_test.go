package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ffeval/internal/experiment"
	"github.com/san-kum/ffeval/internal/storage"
)

const scenarioYAML = `
name: backends
description: compare kernels on two systems
steps:
  - system: butane
    backend: serial
  - system: butane
    backend: parallel
    workers: 2
    save: true
  - system: formamide
    parallel_frames: true
    metrics: [max_force]
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScenario(t *testing.T) {
	scenario, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(scenario.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(scenario.Steps))
	}

	st := storage.New(t.TempDir())
	results, err := RunScenario(context.Background(), scenario, experiment.NewRegistry(), st, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	serial, parallel := results[0].Result, results[1].Result
	if serial.Backend != "serial" || parallel.Backend != "parallel" {
		t.Errorf("unexpected backends %s, %s", serial.Backend, parallel.Backend)
	}
	for i := range serial.Totals {
		if d := serial.Totals[i] - parallel.Totals[i]; d > 1e-9 || d < -1e-9 {
			t.Errorf("frame %d: serial %f, parallel %f", i, serial.Totals[i], parallel.Totals[i])
		}
	}

	if results[0].RunID != "" || results[1].RunID == "" {
		t.Errorf("expected only step 2 saved, got %q, %q", results[0].RunID, results[1].RunID)
	}
	runs, err := st.List()
	if err != nil || len(runs) != 1 {
		t.Errorf("expected 1 stored run, got %d (%v)", len(runs), err)
	}

	if _, ok := results[2].Result.Metrics["max_force"]; !ok || len(results[2].Result.Metrics) != 1 {
		t.Errorf("expected only max_force, got %v", results[2].Result.Metrics)
	}
}

func TestRunScenarioStopsOnError(t *testing.T) {
	scenario := &Scenario{Name: "bad", Steps: []ScenarioStep{{System: "water"}, {System: "argon"}}}
	results, err := RunScenario(context.Background(), scenario, experiment.NewRegistry(), nil, nil)
	if err == nil {
		t.Fatal("expected error for unknown system")
	}
	if len(results) != 1 {
		t.Errorf("expected the first step to complete, got %d results", len(results))
	}
}

func TestLoadScenarioRejectsEmpty(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}
