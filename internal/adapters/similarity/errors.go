package similarity

import "errors"

// Sentinel kinds for similarity service errors.
var (
	// ErrInvalidGuess marks a word the service does not recognize.
	ErrInvalidGuess = errors.New("invalid guess")
	// ErrLookup marks a transient transport or service failure.
	ErrLookup = errors.New("similarity lookup failed")
)
