// Package analysis provides checks and scans built on top of a frame kernel.
//
//   - [CheckForces]: analytic forces against central differences of the energy
//   - [TorsionScan]: energy profile of one dihedral rotated through 360 degrees
//
// # Force Verification
//
// A correct kernel returns forces equal to the negative energy gradient:
//
//	report := analysis.CheckForces(tables, compute.NewSerialBackend(), frame, 1e-5)
//	if report.MaxDeviation > 1e-4 {
//	    // derivative and potential disagree
//	}
package analysis
