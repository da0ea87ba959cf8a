// Package ff defines the force-field data model shared by the staging and
// evaluation packages.
//
// A system is described by a [Topology] (per-atom type labels and charges plus
// bond, angle, dihedral and improper index tuples) and a [ParameterSet] that
// resolves force-field constants by atom type or type tuple:
//
//   - [AtomType]: Lennard-Jones sigma/epsilon and their 1-4 variants
//   - [NBFix]: pairwise override of the combination rule
//   - [BondType], [AngleType], [DihedralTerm], [ImproperType], [PeriodicImproper]
//   - [Frame]: coordinates and periodic box of one snapshot
//   - [Energies]: per-category energies in [Category] order
//
// Units are Å, kcal/mol and elementary charges. Angles are kept in degrees in
// a ParameterSet, the way force-field files carry them, and converted to
// radians when tables are staged.
//
// # Example
//
//	prm := ff.NewParameterSet()
//	prm.AddAtomType(ff.AtomType{Name: "CT", Sigma: 3.4, Epsilon: 0.1094})
//	prm.AddBond("CT", "CT", ff.BondType{K: 310, Req: 1.526})
//	top := &ff.Topology{Types: []string{"CT", "CT"}, Charges: []float64{0, 0}, Bonds: [][2]int{{0, 1}}}
//
// Lookups fail with the sentinel errors in errors.go, so callers can test
// them with errors.Is.
package ff
