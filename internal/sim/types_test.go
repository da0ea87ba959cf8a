package sim

import (
	"errors"
	"testing"

	"github.com/san-kum/ffeval/internal/ff"
)

func TestResultViews(t *testing.T) {
	r := newResult(2)
	r.Energies[0] = ff.Energies{1, 2, 3, 4, 5, 6}
	r.Energies[1] = ff.Energies{6, 5, 4, 3, 2, 1}

	table := r.Table()
	if len(table) != 2 || len(table[0]) != ff.NumCategories {
		t.Fatalf("expected 2x%d table, got %v", ff.NumCategories, table)
	}
	if table[1][ff.Elec] != 4 {
		t.Errorf("expected 4, got %v", table[1][ff.Elec])
	}

	table[0][0] = 99
	if r.Energies[0][0] != 1 {
		t.Error("table should not alias the result")
	}

	series := r.Series(ff.Improper)
	if series[0] != 6 || series[1] != 1 {
		t.Errorf("expected [6 1], got %v", series)
	}

	if fr := r.Frame(1); fr.Index != 1 || fr.Total() != 21 {
		t.Errorf("unexpected frame view %+v", fr)
	}
}

func TestFrameError(t *testing.T) {
	err := error(&FrameError{Frame: 3, Wrapped: ff.ErrInvalidFrame})
	expected := "frame 3: ff: invalid frame (NaN or Inf detected)"
	if err.Error() != expected {
		t.Errorf("FrameError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ff.ErrInvalidFrame) {
		t.Error("expected FrameError to unwrap")
	}
}
