package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/sim"
)

const (
	metadataFile     = "metadata.json"
	energiesFile     = "energies.csv"
	forcesFile       = "forces.bin.zst"
	atomEnergiesFile = "atom_energies.bin.zst"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string             `json:"id"`
	System         string             `json:"system"`
	Timestamp      time.Time          `json:"timestamp"`
	Backend        string             `json:"backend"`
	Workers        int                `json:"workers"`
	ParallelFrames bool               `json:"parallel_frames"`
	NumAtoms       int                `json:"num_atoms"`
	NumFrames      int                `json:"num_frames"`
	Elapsed        time.Duration      `json:"elapsed_ns"`
	Metrics        map[string]float64 `json:"metrics"`
}

// Save writes one run under a fresh directory and returns its ID. ID,
// Timestamp, NumFrames, NumAtoms, Elapsed and Metrics are filled from result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	meta.Timestamp = time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.System, meta.Timestamp.UnixNano())
	meta.NumFrames = result.NumFrames()
	if meta.NumFrames > 0 {
		meta.NumAtoms = len(result.Forces[0])
	}
	meta.Backend = result.Backend
	meta.Elapsed = result.Elapsed
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeEnergies(filepath.Join(runDir, energiesFile), result); err != nil {
		return "", err
	}

	forces := make([]float64, 0, meta.NumFrames*meta.NumAtoms*3)
	atomEnergies := make([]float64, 0, meta.NumFrames*meta.NumAtoms*ff.NumCategories)
	for i := 0; i < meta.NumFrames; i++ {
		for _, f := range result.Forces[i] {
			forces = append(forces, f.X, f.Y, f.Z)
		}
		for _, e := range result.AtomEnergies[i] {
			atomEnergies = append(atomEnergies, e[:]...)
		}
	}
	if err := writeFloats(filepath.Join(runDir, forcesFile), forces); err != nil {
		return "", err
	}
	if err := writeFloats(filepath.Join(runDir, atomEnergiesFile), atomEnergies); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeEnergies(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"frame"}
	for _, c := range ff.Categories() {
		header = append(header, c.String())
	}
	header = append(header, "total")
	if err := w.Write(header); err != nil {
		return err
	}

	for i, e := range result.Energies {
		row := []string{strconv.Itoa(i)}
		for _, v := range e {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		row = append(row, strconv.FormatFloat(result.Totals[i], 'g', -1, 64))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadEnergies reads the per-frame category energies and totals.
func (s *Store) LoadEnergies(runID string) ([]ff.Energies, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, energiesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = ff.NumCategories + 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []ff.Energies{}, []float64{}, nil
	}

	energies := make([]ff.Energies, 0, len(records)-1)
	totals := make([]float64, 0, len(records)-1)
	for line, record := range records[1:] {
		var e ff.Energies
		for c := range e {
			v, err := strconv.ParseFloat(record[c+1], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s line %d: %w", energiesFile, line+2, err)
			}
			e[c] = v
		}
		total, err := strconv.ParseFloat(record[ff.NumCategories+1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", energiesFile, line+2, err)
		}
		energies = append(energies, e)
		totals = append(totals, total)
	}
	return energies, totals, nil
}

// LoadForces reads the frames x atoms force dump.
func (s *Store) LoadForces(runID string) ([][]r3.Vec, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	vals, err := readFloats(filepath.Join(s.baseDir, runID, forcesFile), meta.NumFrames*meta.NumAtoms*3)
	if err != nil {
		return nil, err
	}

	out := make([][]r3.Vec, meta.NumFrames)
	for i := range out {
		out[i] = make([]r3.Vec, meta.NumAtoms)
		for a := range out[i] {
			k := (i*meta.NumAtoms + a) * 3
			out[i][a] = r3.Vec{X: vals[k], Y: vals[k+1], Z: vals[k+2]}
		}
	}
	return out, nil
}

// LoadAtomEnergies reads the frames x atoms per-category energy dump.
func (s *Store) LoadAtomEnergies(runID string) ([][]ff.Energies, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	vals, err := readFloats(filepath.Join(s.baseDir, runID, atomEnergiesFile), meta.NumFrames*meta.NumAtoms*ff.NumCategories)
	if err != nil {
		return nil, err
	}

	out := make([][]ff.Energies, meta.NumFrames)
	for i := range out {
		out[i] = make([]ff.Energies, meta.NumAtoms)
		for a := range out[i] {
			copy(out[i][a][:], vals[(i*meta.NumAtoms+a)*ff.NumCategories:])
		}
	}
	return out, nil
}
