package compute

import (
	"runtime"
	"sync"

	"github.com/san-kum/ffeval/internal/ff"
	"github.com/san-kum/ffeval/internal/physics"
	"github.com/san-kum/ffeval/internal/stage"
)

// minChunk is the smallest unit of work handed to one goroutine.
const minChunk = 8

// ParallelBackend splits a frame over workers. Each worker fills its own
// accumulator; the partial results are summed in chunk order afterwards, so
// a given worker count always produces the same rounding.
type ParallelBackend struct {
	workers int

	mu    sync.Mutex
	pools map[int]*AccumulatorPool
}

func NewParallelBackend(workers int) *ParallelBackend {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &ParallelBackend{workers: workers, pools: make(map[int]*AccumulatorPool)}
}

func (p *ParallelBackend) Name() string { return "parallel" }

func (p *ParallelBackend) Workers() int { return p.workers }

func (p *ParallelBackend) Evaluate(t *stage.Tables, f ff.Frame, acc *physics.Accumulator) {
	pool := p.pool(t.NumAtoms)
	locals := make([]*physics.Accumulator, p.workers)
	local := func(chunk int) *physics.Accumulator {
		if locals[chunk] == nil {
			locals[chunk] = pool.Get()
		}
		return locals[chunk]
	}

	n := t.NumAtoms
	// Row i has n-1-i partners; pairing row k with row n-1-k evens out the
	// work per unit.
	folded := (n + 1) / 2
	ff.ParallelFor(folded, p.workers, 1, func(chunk, start, end int) {
		a := local(chunk)
		for k := start; k < end; k++ {
			pairRow(t, f, k, a)
			if m := n - 1 - k; m != k {
				pairRow(t, f, m, a)
			}
		}
	})

	ff.ParallelFor(len(t.Angles), p.workers, minChunk, func(chunk, start, end int) {
		a := local(chunk)
		for i := start; i < end; i++ {
			physics.EvaluateAngle(t, f, i, a)
		}
	})
	ff.ParallelFor(len(t.Dihedrals), p.workers, minChunk, func(chunk, start, end int) {
		a := local(chunk)
		for i := start; i < end; i++ {
			physics.EvaluateDihedral(t, f, i, a)
		}
	})
	ff.ParallelFor(len(t.Impropers), p.workers, minChunk, func(chunk, start, end int) {
		a := local(chunk)
		for i := start; i < end; i++ {
			physics.EvaluateImproper(t, f, i, a)
		}
	})

	for _, a := range locals {
		if a == nil {
			continue
		}
		acc.Merge(a)
		pool.Put(a)
	}
}

func pairRow(t *stage.Tables, f ff.Frame, i int, acc *physics.Accumulator) {
	for j := i + 1; j < t.NumAtoms; j++ {
		physics.EvaluatePair(t, f, i, j, acc)
	}
}

func (p *ParallelBackend) pool(numAtoms int) *AccumulatorPool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pool, ok := p.pools[numAtoms]
	if !ok {
		pool = NewAccumulatorPool(numAtoms)
		p.pools[numAtoms] = pool
	}
	return pool
}
