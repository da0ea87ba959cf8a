package stage

import (
	"errors"
	"testing"

	"github.com/san-kum/ffeval/internal/ff"
)

func TestPairedTablesRejectsRaggedValues(t *testing.T) {
	atoms := [][]int{{1, 2}, {3}}
	values := [][]float64{{1, 1, 2, 2}, {3}}

	if _, _, err := pairedTables(atoms, values, 2); !errors.Is(err, ff.ErrMalformedTopology) {
		t.Errorf("expected ErrMalformedTopology, got %v", err)
	}
	if _, _, err := pairedTables(atoms, values[:1], 2); !errors.Is(err, ff.ErrMalformedTopology) {
		t.Errorf("expected ErrMalformedTopology for missing row, got %v", err)
	}

	values[1] = []float64{3, 3}
	idx, val, err := pairedTables(atoms, values, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val.Width() != 2*idx.Width() {
		t.Errorf("expected value width %d, got %d", 2*idx.Width(), val.Width())
	}
}

func TestUniqueSorted(t *testing.T) {
	got := uniqueSorted([]int{5, 2, 5, 1, 2})
	want := []int{1, 2, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}
