package compute

import (
	"fmt"
	"runtime"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/physics"
	"github.com/san-kum/ffeval/internal/stage"
)

// Backend evaluates every interaction of one frame into acc. acc must be
// sized for t.NumAtoms and is added to, not reset.
type Backend interface {
	Name() string
	Evaluate(t *stage.Tables, f ff.Frame, acc *physics.Accumulator)
}

// parallelThreshold is the atom count below which AutoSelectBackend stays serial.
const parallelThreshold = 64

// NewBackend returns the backend registered under name. workers only applies
// to the parallel backend; 0 uses GOMAXPROCS.
func NewBackend(name string, workers int) (Backend, error) {
	switch name {
	case "serial":
		return NewSerialBackend(), nil
	case "parallel":
		return NewParallelBackend(workers), nil
	case "auto", "":
		return nil, fmt.Errorf("backend %q needs a system size, use AutoSelectBackend", name)
	}
	return nil, fmt.Errorf("unknown backend: %s", name)
}

// AutoSelectBackend picks the parallel kernel for systems large enough to
// amortize its merge step.
func AutoSelectBackend(numAtoms, workers int) Backend {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if numAtoms < parallelThreshold || workers == 1 {
		return NewSerialBackend()
	}
	return NewParallelBackend(workers)
}

// Backends lists the names accepted by NewBackend.
func Backends() []string {
	return []string{"serial", "parallel"}
}
