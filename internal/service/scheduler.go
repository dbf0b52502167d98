package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tmhire/tmhire-backend/internal/calendar"
	"github.com/tmhire/tmhire-backend/internal/model"
	"github.com/tmhire/tmhire-backend/internal/plan"
	"github.com/tmhire/tmhire-backend/internal/store"
)

var (
	// ErrNoFleet is returned when a company has no transit mixers, so no
	// average capacity (and no unloading time) can be derived.
	ErrNoFleet = errors.New("no transit mixers registered")

	// ErrNotGenerated is returned when an operation needs a trip table the
	// schedule does not have yet.
	ErrNotGenerated = errors.New("schedule has no generated trip table")

	// ErrAlreadyCommitted guards the tm_count immutability rule: a
	// committed schedule must be released before it can change.
	ErrAlreadyCommitted = errors.New("schedule is committed; release it first")
)

// Notifier dispatches a post-commit notification job. Implemented by the
// webpush worker pool; nil disables notifications.
type Notifier interface {
	Dispatch(scheduleID string)
}

// FleetRequirement is the sizing answer for a prospective delivery.
type FleetRequirement struct {
	TMCount       int
	UnloadingTime time.Duration
	PumpingTime   time.Duration
}

// Scheduler orchestrates the scheduling engine against the store and the
// availability calendar. The engine calls themselves are pure; all state
// lives behind the injected collaborators.
type Scheduler struct {
	store      store.Store
	calendar   *calendar.Calendar
	capacities plan.CapacityTable
	notifier   Notifier
}

// NewScheduler creates a scheduler. notifier may be nil.
func NewScheduler(s store.Store, cal *calendar.Calendar, capacities plan.CapacityTable, notifier Notifier) *Scheduler {
	return &Scheduler{
		store:      s,
		calendar:   cal,
		capacities: capacities,
		notifier:   notifier,
	}
}

func planInput(schedule *model.Schedule, unloading time.Duration) plan.Input {
	return plan.Input{
		Quantity:      schedule.Quantity,
		PumpingSpeed:  schedule.PumpingSpeed,
		OnwardTime:    time.Duration(schedule.OnwardTimeMin) * time.Minute,
		ReturnTime:    time.Duration(schedule.ReturnTimeMin) * time.Minute,
		BufferTime:    time.Duration(schedule.BufferTimeMin) * time.Minute,
		UnloadingTime: unloading,
	}
}

// unloadingTimeFor derives the unloading duration from the company's fleet
// average capacity.
func (s *Scheduler) unloadingTimeFor(ctx context.Context, companyID string) (float64, time.Duration, error) {
	avg, err := s.store.AverageTMCapacity(ctx, companyID)
	if err != nil {
		return 0, 0, err
	}
	if avg == 0 {
		return 0, 0, ErrNoFleet
	}
	unloading, err := s.capacities.UnloadingTime(avg)
	if err != nil {
		return 0, 0, err
	}
	return avg, unloading, nil
}

// ComputeFleetRequirement answers how many TMs a delivery with the given
// parameters needs. in.UnloadingTime is ignored; it is derived from the
// company's fleet.
func (s *Scheduler) ComputeFleetRequirement(ctx context.Context, companyID string, in plan.Input) (*FleetRequirement, error) {
	_, unloading, err := s.unloadingTimeFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	in.UnloadingTime = unloading

	pumping := in.PumpingTime()
	count, err := plan.RequiredTMCount(pumping, in.OnwardTime, in.ReturnTime, in.BufferTime, unloading)
	if err != nil {
		return nil, err
	}
	return &FleetRequirement{TMCount: count, UnloadingTime: unloading, PumpingTime: pumping}, nil
}

// CreateSchedule stores a new draft. The input parameters are validated
// shallowly here; full validation happens on generation.
func (s *Scheduler) CreateSchedule(ctx context.Context, companyID string, schedule *model.Schedule) error {
	if _, err := s.store.Client(ctx, companyID, schedule.ClientID); err != nil {
		return fmt.Errorf("client %s: %w", schedule.ClientID, err)
	}

	schedule.ID = uuid.NewString()
	schedule.CompanyID = companyID
	schedule.Status = model.StatusDraft
	schedule.Trips = nil
	if schedule.PumpingSpeed > 0 {
		schedule.PumpingHours = schedule.Quantity / schedule.PumpingSpeed
	}
	return s.store.CreateSchedule(ctx, schedule)
}

// UpdateSchedule replaces the input parameters of a schedule and resets it
// to draft, discarding any generated table. Committed schedules must be
// released first.
func (s *Scheduler) UpdateSchedule(ctx context.Context, companyID string, update *model.Schedule) (*model.Schedule, error) {
	schedule, err := s.store.Schedule(ctx, companyID, update.ID)
	if err != nil {
		return nil, err
	}
	if schedule.Status == model.StatusCommitted {
		return nil, ErrAlreadyCommitted
	}

	schedule.ClientID = update.ClientID
	schedule.SiteAddress = update.SiteAddress
	schedule.Quantity = update.Quantity
	schedule.PumpingSpeed = update.PumpingSpeed
	schedule.OnwardTimeMin = update.OnwardTimeMin
	schedule.ReturnTimeMin = update.ReturnTimeMin
	schedule.BufferTimeMin = update.BufferTimeMin
	if schedule.PumpingSpeed > 0 {
		schedule.PumpingHours = schedule.Quantity / schedule.PumpingSpeed
	}
	schedule.Status = model.StatusDraft
	schedule.Trips = nil
	schedule.TMCount = 0

	if err := s.store.SaveSchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// GenerateSchedule computes the trip table for a schedule. When
// tmSelection is empty the fleet sizing calculator picks the count and the
// first vehicles of the roster are used; otherwise the selection overrides
// both, in order.
func (s *Scheduler) GenerateSchedule(ctx context.Context, companyID, scheduleID string, start time.Time, tmSelection []string) (*model.Schedule, error) {
	schedule, err := s.store.Schedule(ctx, companyID, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.Status == model.StatusCommitted {
		return nil, ErrAlreadyCommitted
	}

	avg, unloading, err := s.unloadingTimeFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	in := planInput(schedule, unloading)

	var tmIDs []string
	var tmCount int
	if len(tmSelection) > 0 {
		tms, err := s.store.TMsByIDs(ctx, companyID, tmSelection)
		if err != nil {
			return nil, err
		}
		if len(tms) != len(tmSelection) {
			return nil, fmt.Errorf("%w: %d of %d selected vehicles belong to the fleet",
				plan.ErrInvalidFleetSize, len(tms), len(tmSelection))
		}
		// Preserve the caller's rotation order.
		tmIDs = tmSelection
		tmCount = len(tmSelection)
	} else {
		tmCount, err = plan.RequiredTMCount(in.PumpingTime(), in.OnwardTime, in.ReturnTime, in.BufferTime, unloading)
		if err != nil {
			return nil, err
		}
		tms, err := s.store.TMs(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if len(tms) < tmCount {
			return nil, fmt.Errorf("%w: delivery needs %d vehicles, fleet has %d",
				plan.ErrInvalidFleetSize, tmCount, len(tms))
		}
		for _, tm := range tms[:tmCount] {
			tmIDs = append(tmIDs, tm.ID)
		}
	}

	trips, err := plan.GenerateTrips(in, tmCount, tmIDs, start.UTC())
	if err != nil {
		return nil, err
	}

	schedule.TMCapacity = avg
	schedule.UnloadingTimeMin = int(unloading / time.Minute)
	schedule.PumpingHours = schedule.Quantity / schedule.PumpingSpeed
	schedule.TMCount = tmCount
	schedule.Status = model.StatusGenerated
	schedule.Trips = make([]model.Trip, 0, len(trips))
	for _, trip := range trips {
		schedule.Trips = append(schedule.Trips, model.Trip{
			TripNo:       trip.TripNo,
			TMID:         trip.TMID,
			PlantStart:   trip.PlantStart,
			PumpStart:    trip.PumpStart,
			UnloadingEnd: trip.UnloadingEnd,
			ReturnAt:     trip.Return,
			CushionMin:   int(trip.Cushion / time.Minute),
			Volume:       trip.Volume,
		})
	}

	if err := s.store.SaveSchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// CommitSchedule reserves every trip's vehicle window in the availability
// calendar, all-or-nothing, and marks the schedule committed. A
// *calendar.ConflictError is returned unchanged so the caller can retry
// with a different start time or vehicle set.
func (s *Scheduler) CommitSchedule(ctx context.Context, companyID, scheduleID string) (*model.Schedule, error) {
	schedule, err := s.store.Schedule(ctx, companyID, scheduleID)
	if err != nil {
		return nil, err
	}
	switch schedule.Status {
	case model.StatusDraft:
		return nil, ErrNotGenerated
	case model.StatusCommitted:
		return nil, ErrAlreadyCommitted
	}

	if err := s.calendar.Book(ctx, slotsFromTrips(schedule)); err != nil {
		return nil, err
	}

	schedule.Status = model.StatusCommitted
	if err := s.store.SaveSchedule(ctx, schedule); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Dispatch(schedule.ID)
	}
	return schedule, nil
}

// ReleaseSchedule frees the schedule's calendar slots and moves it back to
// generated. Releasing a schedule that holds no slots is a no-op.
func (s *Scheduler) ReleaseSchedule(ctx context.Context, companyID, scheduleID string) (*model.Schedule, error) {
	schedule, err := s.store.Schedule(ctx, companyID, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.Status != model.StatusCommitted {
		return schedule, nil
	}

	if err := s.calendar.Release(ctx, schedule.ID); err != nil {
		return nil, err
	}
	schedule.Status = model.StatusGenerated
	if err := s.store.SaveSchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// DeleteSchedule releases any slots the schedule holds and removes the
// aggregate.
func (s *Scheduler) DeleteSchedule(ctx context.Context, companyID, scheduleID string) error {
	if _, err := s.store.Schedule(ctx, companyID, scheduleID); err != nil {
		return err
	}
	if err := s.calendar.Release(ctx, scheduleID); err != nil {
		return err
	}
	return s.store.DeleteSchedule(ctx, companyID, scheduleID)
}

// CalendarFor returns the committed slots for one TM on one date, ordered
// by start instant.
func (s *Scheduler) CalendarFor(ctx context.Context, companyID, tmID string, date time.Time) ([]model.AvailabilitySlot, error) {
	return s.calendar.Query(ctx, companyID, tmID, date)
}

// slotsFromTrips derives one availability slot per trip, spanning the
// vehicle's absence from the plant.
func slotsFromTrips(schedule *model.Schedule) []model.AvailabilitySlot {
	slots := make([]model.AvailabilitySlot, 0, len(schedule.Trips))
	for _, trip := range schedule.Trips {
		slots = append(slots, model.AvailabilitySlot{
			CompanyID:  schedule.CompanyID,
			TMID:       trip.TMID,
			SlotDate:   calendar.DateOf(trip.PlantStart),
			StartTime:  trip.PlantStart,
			EndTime:    trip.ReturnAt,
			ScheduleID: schedule.ID,
		})
	}
	return slots
}
