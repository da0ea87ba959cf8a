// Package geom provides the periodic-boundary and vector geometry used by the
// force-field kernels.
//
// All functions are pure. Vectors are [r3.Vec] values from gonum; a box is an
// r3.Vec of edge lengths, and a zero edge disables wrapping along that axis.
//
//   - [Wrap] and [Delta]: minimum-image displacement for non-bonded pairs
//   - [WrapBonded] and [BondedDelta]: minimum-image bonded vectors
//   - [Dihedral]: torsion angle plus the vectors the torsion force needs
package geom
