package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Energies: []ff.Energies{
			{1.5, -0.25, -3.125, 0.5, 0.1, 0},
			{1.25, -0.5, -3.0, 0.75, 0.2, 1e-17},
		},
		Totals: []float64{-1.275, -1.3},
		AtomEnergies: [][]ff.Energies{
			{{0.75, -0.125}, {0.75, -0.125, -3.125, 0.5, 0.1}},
			{{0.625, -0.25}, {0.625, -0.25, -3.0, 0.75, 0.2, 1e-17}},
		},
		Forces: [][]r3.Vec{
			{{X: 1, Y: -2, Z: 0.5}, {X: -1, Y: 2, Z: -0.5}},
			{{X: math.Pi}, {X: -math.Pi}},
		},
		Metrics: map[string]float64{"max_force": 2.29},
		Backend: "serial",
		Elapsed: 3 * time.Millisecond,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := testResult()
	runID, err := st.Save(RunMetadata{System: "test", Workers: 2}, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.System != "test" {
		t.Errorf("expected system 'test', got '%s'", meta.System)
	}
	if meta.NumFrames != 2 || meta.NumAtoms != 2 {
		t.Errorf("expected 2 frames of 2 atoms, got %d x %d", meta.NumFrames, meta.NumAtoms)
	}
	if meta.Backend != "serial" || meta.Workers != 2 {
		t.Errorf("expected serial backend with 2 workers, got %s/%d", meta.Backend, meta.Workers)
	}
	if meta.Metrics["max_force"] != 2.29 {
		t.Errorf("expected max_force 2.29, got %f", meta.Metrics["max_force"])
	}

	energies, totals, err := st.LoadEnergies(runID)
	if err != nil {
		t.Fatalf("load energies failed: %v", err)
	}
	if len(energies) != 2 || len(totals) != 2 {
		t.Fatalf("expected 2 frames, got %d/%d", len(energies), len(totals))
	}
	for i := range energies {
		if energies[i] != result.Energies[i] {
			t.Errorf("frame %d: expected %v, got %v", i, result.Energies[i], energies[i])
		}
		if totals[i] != result.Totals[i] {
			t.Errorf("frame %d: expected total %v, got %v", i, result.Totals[i], totals[i])
		}
	}

	forces, err := st.LoadForces(runID)
	if err != nil {
		t.Fatalf("load forces failed: %v", err)
	}
	for i := range forces {
		for a := range forces[i] {
			if forces[i][a] != result.Forces[i][a] {
				t.Errorf("frame %d atom %d: expected %v, got %v", i, a, result.Forces[i][a], forces[i][a])
			}
		}
	}

	atomEnergies, err := st.LoadAtomEnergies(runID)
	if err != nil {
		t.Fatalf("load atom energies failed: %v", err)
	}
	for i := range atomEnergies {
		for a := range atomEnergies[i] {
			if atomEnergies[i][a] != result.AtomEnergies[i][a] {
				t.Errorf("frame %d atom %d: expected %v, got %v", i, a, result.AtomEnergies[i][a], atomEnergies[i][a])
			}
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	first, err := st.Save(RunMetadata{System: "a"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(RunMetadata{System: "b"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{System: "test"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "energies.csv", "forces.bin.zst", "atom_energies.bin.zst"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestLoadForcesRejectsTruncatedDump(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	runID, err := st.Save(RunMetadata{System: "test"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := writeFloats(filepath.Join(tmpDir, runID, "forces.bin.zst"), []float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.LoadForces(runID); err == nil {
		t.Error("expected error for truncated force dump")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{System: "test"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	meta, result, err := st.LoadResult(runID)
	if err != nil {
		t.Fatalf("load result failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, *meta, result); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Run.ID != runID {
		t.Errorf("expected run %s, got %s", runID, data.Run.ID)
	}
	if len(data.Categories) != ff.NumCategories || data.Categories[0] != "bond" {
		t.Errorf("unexpected categories %v", data.Categories)
	}
	if len(data.Energies) != 2 || data.Energies[1][2] != -3.0 {
		t.Errorf("unexpected energies %v", data.Energies)
	}
	if data.Forces[1][0][0] != math.Pi {
		t.Errorf("expected force x %v, got %v", math.Pi, data.Forces[1][0][0])
	}
	if len(data.AtomEnergies) != 2 || len(data.AtomEnergies[0]) != 2 {
		t.Errorf("unexpected atom energies shape")
	}
}
