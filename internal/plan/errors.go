package plan

import "errors"

var (
	// ErrInvalidInputParameters is returned when a quantity, rate or
	// duration supplied to the engine is outside its valid range.
	ErrInvalidInputParameters = errors.New("invalid input parameters")

	// ErrInvalidFleetSize is returned when the requested TM count is below
	// one or more vehicles are requested than identifiers supplied.
	ErrInvalidFleetSize = errors.New("invalid fleet size")

	// ErrInvalidDuration is returned by the fleet sizing calculator for a
	// non-positive unloading time.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrOutOfRangeCapacity is returned when the capacity table is empty.
	// This is a configuration error, not a per-request one.
	ErrOutOfRangeCapacity = errors.New("capacity table is empty")
)
