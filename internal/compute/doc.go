// Package compute provides the frame kernels that walk every interaction of
// a staged system.
//
// Two CPU backends implement [Backend]:
//
//   - [SerialBackend]: pairs i<j, then angles, dihedrals and impropers
//   - [ParallelBackend]: the same loops split over goroutines with
//     per-worker accumulators summed after the frame
//
// [AutoSelectBackend] stays serial for small systems:
//
//	backend := compute.AutoSelectBackend(tables.NumAtoms, 0)
//	acc := physics.NewAccumulator(tables.NumAtoms)
//	backend.Evaluate(tables, frame, acc)
//
// Both backends are safe for concurrent use on different accumulators.
package compute
