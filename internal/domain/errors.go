package domain

import "errors"

var (
	// ErrInvalidInstance reports malformed input data (bad speed, coordinates, etc.).
	ErrInvalidInstance = errors.New("invalid instance")

	// ErrInvalidAssignment reports an assignment set that cannot be applied to a state.
	ErrInvalidAssignment = errors.New("invalid assignment")
)
