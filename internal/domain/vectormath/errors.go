package vectormath

import "errors"

// Sentinel kinds for vector math errors.
var (
	ErrLengthMismatch = errors.New("vector length mismatch")
	ErrZeroVector     = errors.New("zero-magnitude vector")
)
