package ff

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for staging and evaluation.
var (
	// ErrMissingTypeParameter indicates an atom type without van der Waals parameters.
	ErrMissingTypeParameter = errors.New("ff: missing atom type parameters")

	// ErrMissingBondParameter indicates a bond type pair without constants.
	ErrMissingBondParameter = errors.New("ff: missing bond parameters")

	// ErrMissingAngleParameter indicates an angle type triple without constants.
	ErrMissingAngleParameter = errors.New("ff: missing angle parameters")

	// ErrMissingDihedralParameter indicates a dihedral type quadruple without terms.
	ErrMissingDihedralParameter = errors.New("ff: missing dihedral parameters")

	// ErrMissingImproperParameter indicates an improper with neither a harmonic nor a periodic definition.
	ErrMissingImproperParameter = errors.New("ff: missing improper parameters")

	// ErrMalformedTopology indicates out-of-range indices or inconsistent row shapes.
	ErrMalformedTopology = errors.New("ff: malformed topology")

	// ErrDimensionMismatch indicates a frame whose atom count does not match the topology.
	ErrDimensionMismatch = errors.New("ff: dimension mismatch between frame and topology")

	// ErrInvalidFrame indicates NaN or Inf coordinates or box lengths.
	ErrInvalidFrame = errors.New("ff: invalid frame (NaN or Inf detected)")

	// ErrUnknownCategory indicates an energy category name that does not exist.
	ErrUnknownCategory = errors.New("ff: unknown energy category")
)

// ParameterError wraps a lookup failure with the topology term that caused it.
type ParameterError struct {
	Term    string   // bond, angle, dihedral, improper or atom
	Index   int      // position of the term in the topology
	Types   []string // type signature that was looked up
	Wrapped error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s %d (%s): %v", e.Term, e.Index, strings.Join(e.Types, "-"), e.Wrapped)
}

func (e *ParameterError) Unwrap() error {
	return e.Wrapped
}
