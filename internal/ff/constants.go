package ff

import "math"

// CODATA 2018 values in SI units.
const (
	vacuumPermittivity = 8.8541878128e-12 // F/m
	elementaryCharge   = 1.602176634e-19  // C
	avogadro           = 6.02214076e23    // 1/mol
	calorie            = 4.184            // J
	angstrom           = 1e-10            // m
)

// ElecFactor converts q_i*q_j/r with charges in e and r in Å to kcal/mol.
const ElecFactor = elementaryCharge * elementaryCharge /
	(4 * math.Pi * vacuumPermittivity * angstrom) *
	avogadro / (1000 * calorie)

// Deg2Rad converts degrees to radians.
const Deg2Rad = math.Pi / 180

// RminToSigma converts a Lennard-Jones r-min radius to sigma.
func RminToSigma(rmin float64) float64 {
	return rmin * math.Pow(2, -1.0/6.0)
}
