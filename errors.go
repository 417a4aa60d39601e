package barnes

import "errors"

var (
	// ErrInvalidInput reports malformed input: short or non-uniform axes,
	// mismatched array lengths, out of range tuning parameters.
	ErrInvalidInput = errors.New("barnes: invalid input")

	// ErrInsufficientData reports too few observations for the requested
	// operation.
	ErrInsufficientData = errors.New("barnes: insufficient data")
)
