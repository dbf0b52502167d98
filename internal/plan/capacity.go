package plan

import (
	"fmt"
	"math"
	"time"
)

// CapacityEntry maps an average vehicle capacity (m³) to the time that
// vehicle occupies the pump while discharging a full load.
type CapacityEntry struct {
	Capacity  int
	Unloading time.Duration
}

// CapacityTable is an ordered capacity→unloading lookup. Keys must be
// strictly increasing.
type CapacityTable []CapacityEntry

// DefaultCapacityTable is the fixed table shipped with the engine. It is
// read-only, process-wide state.
var DefaultCapacityTable = CapacityTable{
	{Capacity: 6, Unloading: 10 * time.Minute},
	{Capacity: 7, Unloading: 12 * time.Minute},
	{Capacity: 8, Unloading: 14 * time.Minute},
	{Capacity: 9, Unloading: 16 * time.Minute},
	{Capacity: 10, Unloading: 18 * time.Minute},
}

// UnloadingTime returns the unloading duration for the key nearest to
// avgCapacity. An exact midpoint between two keys resolves to the lower
// key; capacities outside the table clamp to the nearest endpoint.
func (t CapacityTable) UnloadingTime(avgCapacity float64) (time.Duration, error) {
	if len(t) == 0 {
		return 0, ErrOutOfRangeCapacity
	}
	if avgCapacity <= 0 {
		return 0, fmt.Errorf("%w: average capacity must be positive, got %v", ErrInvalidInputParameters, avgCapacity)
	}

	best := t[0]
	bestDist := math.Abs(avgCapacity - float64(t[0].Capacity))
	for _, e := range t[1:] {
		// Strict comparison: a tie keeps the earlier, lower key.
		if d := math.Abs(avgCapacity - float64(e.Capacity)); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best.Unloading, nil
}
