// Package stage compacts a topology and its force-field parameters into the
// dense, read-only tables the evaluation kernels walk.
//
// Per-atom ragged lists (exclusions, bonded partners, 1-4 pairs) are stored
// in fixed-width rows padded with a sentinel: [IndexTable] rows end at the
// first [Sentinel] (-1), [ValueTable] rows end at the first NaN. Pair lists
// are kept only under the lower atom index of each pair, so a lookup for
// (i, j) must be made with i < j.
//
// [Stage] resolves every parameter up front and reports missing force-field
// entries as *ff.ParameterError. A staged [Tables] is never modified and may
// be shared by concurrent frame evaluations.
package stage
