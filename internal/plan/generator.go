package plan

import (
	"fmt"
	"time"
)

// Trip is one complete TM round trip within a schedule.
type Trip struct {
	TripNo int
	TMID   string

	PlantStart   time.Time // departure from the plant
	PumpStart    time.Time // start of unloading at the pump
	UnloadingEnd time.Time
	Return       time.Time // back at the plant, buffer included

	// Cushion is how long the TM queued at the site before the pump came
	// free. Zero when it could start unloading on arrival.
	Cushion time.Duration

	// Volume delivered by this trip. The final trip carries the exact
	// remainder so the per-trip volumes sum to the requested quantity.
	Volume float64
}

// GenerateTrips produces the ordered trip table for a delivery.
//
// The pump is a single-server FIFO resource; the tmCount vehicles form a
// round-robin pool. Trip n is assigned TM (n-1) mod tmCount. A TM's first
// departure is staggered by its pool index times the unloading interval so
// that vehicles reach the pump already interleaved; afterwards it departs
// the moment its previous trip returns. A trip may not start unloading
// before the preceding trip has left the pump.
//
// The function is pure: it depends only on its arguments.
func GenerateTrips(in Input, tmCount int, tmIDs []string, start time.Time) ([]Trip, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if tmCount < 1 {
		return nil, fmt.Errorf("%w: tm count must be at least 1, got %d", ErrInvalidFleetSize, tmCount)
	}
	if len(tmIDs) < tmCount {
		return nil, fmt.Errorf("%w: %d identifiers supplied for %d vehicles", ErrInvalidFleetSize, len(tmIDs), tmCount)
	}

	totalTrips := ceilDivDuration(in.PumpingTime(), in.UnloadingTime)
	if totalTrips < 1 {
		totalTrips = 1
	}
	perTrip := in.Quantity / float64(totalTrips)

	// freeAt[i] is when TM i becomes available again; the zero value marks
	// a vehicle that has not been dispatched yet.
	freeAt := make([]time.Time, tmCount)
	trips := make([]Trip, 0, totalTrips)
	var prevUnloadingEnd time.Time

	for tripNo := 1; tripNo <= totalTrips; tripNo++ {
		idx := (tripNo - 1) % tmCount

		var plantStart time.Time
		if freeAt[idx].IsZero() {
			plantStart = start.Add(time.Duration(idx) * in.UnloadingTime)
		} else {
			plantStart = freeAt[idx]
		}

		pumpStart := plantStart.Add(in.OnwardTime)
		var cushion time.Duration
		if tripNo > 1 && pumpStart.Before(prevUnloadingEnd) {
			cushion = prevUnloadingEnd.Sub(pumpStart)
			pumpStart = prevUnloadingEnd
		}
		unloadingEnd := pumpStart.Add(in.UnloadingTime)
		returnAt := unloadingEnd.Add(in.ReturnTime + in.BufferTime)

		volume := perTrip
		if tripNo == totalTrips {
			volume = in.Quantity - perTrip*float64(totalTrips-1)
		}

		trips = append(trips, Trip{
			TripNo:       tripNo,
			TMID:         tmIDs[idx],
			PlantStart:   plantStart,
			PumpStart:    pumpStart,
			UnloadingEnd: unloadingEnd,
			Return:       returnAt,
			Cushion:      cushion,
			Volume:       volume,
		})

		freeAt[idx] = returnAt
		prevUnloadingEnd = unloadingEnd
	}
	return trips, nil
}

func ceilDivDuration(a, b time.Duration) int {
	if b <= 0 {
		return 0
	}
	return int((a + b - 1) / b)
}
