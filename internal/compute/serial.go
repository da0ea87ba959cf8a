package compute

import (
	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/physics"
	"github.com/san-kum/ffeval/internal/stage"
)

type SerialBackend struct{}

func NewSerialBackend() *SerialBackend {
	return &SerialBackend{}
}

func (s *SerialBackend) Name() string { return "serial" }

func (s *SerialBackend) Evaluate(t *stage.Tables, f ff.Frame, acc *physics.Accumulator) {
	n := t.NumAtoms
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			physics.EvaluatePair(t, f, i, j, acc)
		}
	}
	for a := range t.Angles {
		physics.EvaluateAngle(t, f, a, acc)
	}
	for d := range t.Dihedrals {
		physics.EvaluateDihedral(t, f, d, acc)
	}
	for d := range t.Impropers {
		physics.EvaluateImproper(t, f, d, acc)
	}
}
