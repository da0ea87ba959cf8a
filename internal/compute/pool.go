package compute

import (
	"sync"

	"github.com/san-kum/ffeval/internal/physics"
)

// AccumulatorPool recycles zeroed accumulators of one system size.
type AccumulatorPool struct {
	pool sync.Pool
	size int
}

func NewAccumulatorPool(numAtoms int) *AccumulatorPool {
	return &AccumulatorPool{
		size: numAtoms,
		pool: sync.Pool{
			New: func() interface{} {
				return physics.NewAccumulator(numAtoms)
			},
		},
	}
}

func (p *AccumulatorPool) Get() *physics.Accumulator {
	return p.pool.Get().(*physics.Accumulator)
}

// Put resets acc and returns it to the pool. Accumulators of another size
// are dropped.
func (p *AccumulatorPool) Put(acc *physics.Accumulator) {
	if acc.Len() == p.size {
		acc.Reset()
		p.pool.Put(acc)
	}
}
