package stage

import (
	"fmt"
	"math"

	"github.com/san-kum/ffeval/internal/ff"
)

// Sentinel terminates a row of an IndexTable.
const Sentinel = -1

// IndexTable stores ragged rows of atom indices in a rows x width block.
type IndexTable struct {
	rows  int
	width int
	data  []int
}

// NewIndexTable packs rows into a table whose width is the longest row. An
// all-empty table has width 1. Negative entries are rejected because they
// would read as the sentinel.
func NewIndexTable(rows [][]int) (*IndexTable, error) {
	width := 1
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	t := &IndexTable{rows: len(rows), width: width, data: make([]int, len(rows)*width)}
	for i := range t.data {
		t.data[i] = Sentinel
	}
	for i, r := range rows {
		for c, v := range r {
			if v < 0 {
				return nil, fmt.Errorf("%w: row %d holds negative index %d", ff.ErrMalformedTopology, i, v)
			}
			t.data[i*width+c] = v
		}
	}
	return t, nil
}

func (t *IndexTable) Rows() int  { return t.rows }
func (t *IndexTable) Width() int { return t.width }

// At returns the entry at row i, column c.
func (t *IndexTable) At(i, c int) int {
	return t.data[i*t.width+c]
}

// Find returns the column of j in row i, or -1. The scan stops at the first
// sentinel.
func (t *IndexTable) Find(i, j int) int {
	row := t.data[i*t.width : (i+1)*t.width]
	for c, v := range row {
		if v == Sentinel {
			return -1
		}
		if v == j {
			return c
		}
	}
	return -1
}

// Row returns the entries of row i up to the sentinel.
func (t *IndexTable) Row(i int) []int {
	row := t.data[i*t.width : (i+1)*t.width]
	for c, v := range row {
		if v == Sentinel {
			return row[:c]
		}
	}
	return row
}

// ValueTable stores ragged rows of float64 values padded with NaN.
type ValueTable struct {
	rows  int
	width int
	data  []float64
}

// NewValueTable packs rows like NewIndexTable. NaN entries are rejected.
func NewValueTable(rows [][]float64) (*ValueTable, error) {
	width := 1
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	t := &ValueTable{rows: len(rows), width: width, data: make([]float64, len(rows)*width)}
	for i := range t.data {
		t.data[i] = math.NaN()
	}
	for i, r := range rows {
		for c, v := range r {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("%w: row %d column %d is NaN", ff.ErrMalformedTopology, i, c)
			}
			t.data[i*width+c] = v
		}
	}
	return t, nil
}

func (t *ValueTable) Rows() int  { return t.rows }
func (t *ValueTable) Width() int { return t.width }

func (t *ValueTable) At(i, c int) float64 {
	return t.data[i*t.width+c]
}

// Row returns the full padded row i, sentinels included. Callers scan until
// they meet NaN in the slot they read.
func (t *ValueTable) Row(i int) []float64 {
	return t.data[i*t.width : (i+1)*t.width]
}

// pairedTables packs an index list and its per-entry values, stride values
// per index. Rows whose shapes disagree are rejected.
func pairedTables(atoms [][]int, values [][]float64, stride int) (*IndexTable, *ValueTable, error) {
	if len(atoms) != len(values) {
		return nil, nil, fmt.Errorf("%w: %d index rows but %d value rows", ff.ErrMalformedTopology, len(atoms), len(values))
	}
	for i := range atoms {
		if len(values[i]) != stride*len(atoms[i]) {
			return nil, nil, fmt.Errorf("%w: row %d has %d indices and %d values", ff.ErrMalformedTopology, i, len(atoms[i]), len(values[i]))
		}
	}
	idx, err := NewIndexTable(atoms)
	if err != nil {
		return nil, nil, err
	}
	val, err := NewValueTable(values)
	if err != nil {
		return nil, nil, err
	}
	return idx, val, nil
}
