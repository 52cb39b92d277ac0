package core

import "errors"

var (
	// ErrInvalidConfiguration reports a violated structural precondition:
	// an even or non-positive sensor count, non-positive geometry or sampling
	// parameters, or mismatched matrix and vector lengths.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNumericDegeneracy reports an input that makes a derived quantity
	// undefined, such as the spacing of a single-sensor array.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
)
