package storage

import (
	"encoding/json"
	"io"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/sim"
)

type ExportData struct {
	Run          RunMetadata        `json:"run"`
	Categories   []string           `json:"categories"`
	Energies     [][]float64        `json:"energies"`
	Totals       []float64          `json:"totals"`
	Forces       [][][3]float64     `json:"forces,omitempty"`
	AtomEnergies [][][]float64      `json:"atom_energies,omitempty"`
	Metrics      map[string]float64 `json:"metrics"`
}

// ExportJSON writes meta and result to w as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	data := ExportData{
		Run:      meta,
		Energies: result.Table(),
		Totals:   result.Totals,
		Forces:   make([][][3]float64, len(result.Forces)),
		Metrics:  result.Metrics,
	}
	for _, c := range ff.Categories() {
		data.Categories = append(data.Categories, c.String())
	}
	for i, frame := range result.Forces {
		data.Forces[i] = vecs(frame)
	}
	for _, frame := range result.AtomEnergies {
		rows := make([][]float64, len(frame))
		for a, e := range frame {
			rows[a] = append([]float64(nil), e[:]...)
		}
		data.AtomEnergies = append(data.AtomEnergies, rows)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// LoadResult rebuilds a sim.Result from a stored run.
func (s *Store) LoadResult(runID string) (*RunMetadata, *sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	energies, totals, err := s.LoadEnergies(runID)
	if err != nil {
		return nil, nil, err
	}
	forces, err := s.LoadForces(runID)
	if err != nil {
		return nil, nil, err
	}
	atomEnergies, err := s.LoadAtomEnergies(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &sim.Result{
		Energies:     energies,
		Totals:       totals,
		AtomEnergies: atomEnergies,
		Forces:       forces,
		Metrics:      meta.Metrics,
		Backend:      meta.Backend,
		Elapsed:      meta.Elapsed,
	}, nil
}

func vecs(vs []r3.Vec) [][3]float64 {
	out := make([][3]float64, len(vs))
	for i, v := range vs {
		out[i] = [3]float64{v.X, v.Y, v.Z}
	}
	return out
}
