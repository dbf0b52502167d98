package plan

import (
	"fmt"
	"time"
)

// Input carries the dispatcher-supplied parameters for one delivery plus
// the unloading time derived from the fleet's average capacity. It is a
// value object: once a schedule has been generated from it, it is not
// mutated.
type Input struct {
	Quantity     float64 // m³ to deliver
	PumpingSpeed float64 // m³ per hour

	OnwardTime    time.Duration // plant → site
	ReturnTime    time.Duration // site → plant
	BufferTime    time.Duration // slack added after each return leg
	UnloadingTime time.Duration // derived via CapacityTable, never user-supplied
}

// PumpingTime is the total time the pump runs: quantity over pumping speed.
func (in Input) PumpingTime() time.Duration {
	if in.PumpingSpeed <= 0 {
		return 0
	}
	return time.Duration(in.Quantity / in.PumpingSpeed * float64(time.Hour))
}

// Cycle is the duration a TM is unavailable for a new trip.
func (in Input) Cycle() time.Duration {
	return in.OnwardTime + in.UnloadingTime + in.ReturnTime + in.BufferTime
}

// Validate rejects inputs the generator cannot schedule. Buffer time may be
// zero; every other parameter must be positive so that the trip ordering
// invariants (plant_start < pump_start ≤ unloading_end < return) can hold.
func (in Input) Validate() error {
	switch {
	case in.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidInputParameters, in.Quantity)
	case in.PumpingSpeed <= 0:
		return fmt.Errorf("%w: pumping speed must be positive, got %v", ErrInvalidInputParameters, in.PumpingSpeed)
	case in.OnwardTime <= 0:
		return fmt.Errorf("%w: onward time must be positive, got %s", ErrInvalidInputParameters, in.OnwardTime)
	case in.ReturnTime <= 0:
		return fmt.Errorf("%w: return time must be positive, got %s", ErrInvalidInputParameters, in.ReturnTime)
	case in.BufferTime < 0:
		return fmt.Errorf("%w: buffer time must be non-negative, got %s", ErrInvalidInputParameters, in.BufferTime)
	case in.UnloadingTime <= 0:
		return fmt.Errorf("%w: unloading time must be positive, got %s", ErrInvalidInputParameters, in.UnloadingTime)
	}
	return nil
}
