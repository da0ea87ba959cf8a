// Package physics evaluates the individual force-field terms of one frame.
//
// Each term has a pure form that returns the potential and its derivative,
// and an Evaluate wrapper that reads a staged table and books the result into
// an [Accumulator]:
//
//   - [HarmonicBond], [LennardJones], [Coulomb] and [EvaluatePair]
//   - [HarmonicAngle] and [EvaluateAngle]
//   - [TorsionEnergy], [TorsionForces], [EvaluateDihedral] and [EvaluateImproper]
//
// Non-bonded parameters are resolved by [ResolvePair]: an NBFIX override
// first, then the Lorentz-Berthelot rule, using 1-4 parameters and scales for
// registered 1-4 pairs. Both the van der Waals energy and force of a 1-4 pair
// are scaled.
//
// Energies are in kcal/mol and forces in kcal/(mol Å). The harmonic forms
// are k*x^2 with no factor 1/2, matching AMBER-style force constants. Each
// term's energy is split evenly over its atoms in the per-atom decomposition.
package physics
