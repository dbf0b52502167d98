package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tmhire/tmhire-backend/internal/calendar"
	"github.com/tmhire/tmhire-backend/internal/model"
	"github.com/tmhire/tmhire-backend/internal/plan"
	"github.com/tmhire/tmhire-backend/internal/store"
)

type recordingNotifier struct {
	dispatched []string
}

func (n *recordingNotifier) Dispatch(scheduleID string) {
	n.dispatched = append(n.dispatched, scheduleID)
}

type fixture struct {
	scheduler *Scheduler
	store     store.Store
	notifier  *recordingNotifier
	companyID string
	clientID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Company{}, &model.User{}, &model.Client{}, &model.Plant{},
		&model.TransitMixer{}, &model.Schedule{}, &model.Trip{},
		&model.AvailabilitySlot{},
	))
	t.Cleanup(func() {
		for _, table := range []string{"availability_slots", "trips", "schedules", "transit_mixers", "clients", "companies"} {
			db.Exec("DELETE FROM " + table)
		}
	})

	appStore := store.NewGormStore(db)
	notifier := &recordingNotifier{}
	scheduler := NewScheduler(appStore, calendar.New(db), plan.DefaultCapacityTable, notifier)

	ctx := context.Background()
	companyID := uuid.NewString()
	require.NoError(t, appStore.CreateCompany(ctx, &model.Company{ID: companyID, Name: "RMC Supply Co"}))

	clientID := uuid.NewString()
	require.NoError(t, appStore.CreateClient(ctx, &model.Client{
		ID: clientID, CompanyID: companyID, Name: "ABC Constructions",
	}))

	// Six mixers of 8 m³ each: average capacity 8 → unloading 14 minutes.
	for i := 0; i < 6; i++ {
		require.NoError(t, appStore.CreateTM(ctx, &model.TransitMixer{
			ID:         uuid.NewString(),
			CompanyID:  companyID,
			Identifier: fmt.Sprintf("TM-%c", 'A'+i),
			Capacity:   8,
		}))
	}

	return &fixture{
		scheduler: scheduler,
		store:     appStore,
		notifier:  notifier,
		companyID: companyID,
		clientID:  clientID,
	}
}

func (f *fixture) newDraft(t *testing.T) *model.Schedule {
	t.Helper()
	schedule := &model.Schedule{
		ClientID:      f.clientID,
		Quantity:      60,
		PumpingSpeed:  30,
		OnwardTimeMin: 30,
		ReturnTimeMin: 25,
		BufferTimeMin: 5,
	}
	require.NoError(t, f.scheduler.CreateSchedule(context.Background(), f.companyID, schedule))
	return schedule
}

func TestScheduler_ComputeFleetRequirement(t *testing.T) {
	f := newFixture(t)

	req, err := f.scheduler.ComputeFleetRequirement(context.Background(), f.companyID, plan.Input{
		Quantity:     60,
		PumpingSpeed: 30,
		OnwardTime:   30 * time.Minute,
		ReturnTime:   25 * time.Minute,
		BufferTime:   5 * time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, req.TMCount)
	assert.Equal(t, 14*time.Minute, req.UnloadingTime)
	assert.Equal(t, 2*time.Hour, req.PumpingTime)
}

func TestScheduler_ComputeFleetRequirement_EmptyFleet(t *testing.T) {
	f := newFixture(t)

	otherCompany := uuid.NewString()
	require.NoError(t, f.store.CreateCompany(context.Background(), &model.Company{ID: otherCompany, Name: "Fleetless"}))

	_, err := f.scheduler.ComputeFleetRequirement(context.Background(), otherCompany, plan.Input{
		Quantity: 60, PumpingSpeed: 30,
		OnwardTime: 30 * time.Minute, ReturnTime: 25 * time.Minute,
	})
	assert.ErrorIs(t, err, ErrNoFleet)
}

func TestScheduler_GenerateSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.newDraft(t)

	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	schedule, err := f.scheduler.GenerateSchedule(ctx, f.companyID, draft.ID, start, nil)
	require.NoError(t, err)

	assert.Equal(t, model.StatusGenerated, schedule.Status)
	assert.Equal(t, 6, schedule.TMCount)
	assert.Equal(t, 14, schedule.UnloadingTimeMin)
	assert.InDelta(t, 2.0, schedule.PumpingHours, 1e-9)
	require.Len(t, schedule.Trips, 9)

	first := schedule.Trips[0]
	assert.Equal(t, start, first.PlantStart.UTC())
	assert.Equal(t, start.Add(30*time.Minute), first.PumpStart.UTC())

	var sum float64
	for _, trip := range schedule.Trips {
		sum += trip.Volume
	}
	assert.InDelta(t, 60.0, sum, 1e-9)

	// Regenerating while generated is allowed and rebuilds the table.
	later := start.Add(2 * time.Hour)
	schedule, err = f.scheduler.GenerateSchedule(ctx, f.companyID, draft.ID, later, nil)
	require.NoError(t, err)
	assert.Equal(t, later, schedule.Trips[0].PlantStart.UTC())

	// The persisted aggregate matches.
	stored, err := f.store.Schedule(ctx, f.companyID, draft.ID)
	require.NoError(t, err)
	require.Len(t, stored.Trips, 9)
	assert.Equal(t, 1, stored.Trips[0].TripNo)
}

func TestScheduler_GenerateSchedule_Selection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.newDraft(t)

	tms, err := f.store.TMs(ctx, f.companyID)
	require.NoError(t, err)

	selection := []string{tms[2].ID, tms[0].ID, tms[4].ID}
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	schedule, err := f.scheduler.GenerateSchedule(ctx, f.companyID, draft.ID, start, selection)
	require.NoError(t, err)

	assert.Equal(t, 3, schedule.TMCount)
	// Rotation follows the caller's order.
	assert.Equal(t, selection[0], schedule.Trips[0].TMID)
	assert.Equal(t, selection[1], schedule.Trips[1].TMID)
	assert.Equal(t, selection[2], schedule.Trips[2].TMID)
	assert.Equal(t, selection[0], schedule.Trips[3].TMID)

	// A selection containing a foreign vehicle is rejected.
	_, err = f.scheduler.GenerateSchedule(ctx, f.companyID, draft.ID, start, []string{tms[0].ID, "not-ours"})
	assert.ErrorIs(t, err, plan.ErrInvalidFleetSize)
}

func TestScheduler_CommitReleaseLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	first := f.newDraft(t)
	_, err := f.scheduler.GenerateSchedule(ctx, f.companyID, first.ID, start, nil)
	require.NoError(t, err)

	// Committing a draft is rejected.
	second := f.newDraft(t)
	_, err = f.scheduler.CommitSchedule(ctx, f.companyID, second.ID)
	assert.ErrorIs(t, err, ErrNotGenerated)

	committed, err := f.scheduler.CommitSchedule(ctx, f.companyID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCommitted, committed.Status)
	assert.Equal(t, []string{first.ID}, f.notifier.dispatched)

	// The second schedule wants the same vehicles in the same window.
	_, err = f.scheduler.GenerateSchedule(ctx, f.companyID, second.ID, start, nil)
	require.NoError(t, err)
	_, err = f.scheduler.CommitSchedule(ctx, f.companyID, second.ID)
	var conflict *calendar.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.NotEmpty(t, conflict.TMID)

	// A committed schedule cannot be regenerated or re-committed.
	_, err = f.scheduler.GenerateSchedule(ctx, f.companyID, first.ID, start, nil)
	assert.ErrorIs(t, err, ErrAlreadyCommitted)
	_, err = f.scheduler.CommitSchedule(ctx, f.companyID, first.ID)
	assert.ErrorIs(t, err, ErrAlreadyCommitted)

	// Releasing the first schedule frees the window for the second.
	released, err := f.scheduler.ReleaseSchedule(ctx, f.companyID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusGenerated, released.Status)

	_, err = f.scheduler.CommitSchedule(ctx, f.companyID, second.ID)
	require.NoError(t, err)
}

func TestScheduler_CalendarFor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	draft := f.newDraft(t)
	schedule, err := f.scheduler.GenerateSchedule(ctx, f.companyID, draft.ID, start, nil)
	require.NoError(t, err)
	_, err = f.scheduler.CommitSchedule(ctx, f.companyID, draft.ID)
	require.NoError(t, err)

	tmID := schedule.Trips[0].TMID
	slots, err := f.scheduler.CalendarFor(ctx, f.companyID, tmID, start)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	for i, slot := range slots {
		assert.Equal(t, schedule.ID, slot.ScheduleID)
		if i > 0 {
			assert.False(t, slot.StartTime.Before(slots[i-1].StartTime))
		}
	}
}

func TestScheduler_DeleteReleasesSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	draft := f.newDraft(t)
	schedule, err := f.scheduler.GenerateSchedule(ctx, f.companyID, draft.ID, start, nil)
	require.NoError(t, err)
	_, err = f.scheduler.CommitSchedule(ctx, f.companyID, draft.ID)
	require.NoError(t, err)

	tmID := schedule.Trips[0].TMID
	require.NoError(t, f.scheduler.DeleteSchedule(ctx, f.companyID, draft.ID))

	slots, err := f.scheduler.CalendarFor(ctx, f.companyID, tmID, start)
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = f.store.Schedule(ctx, f.companyID, draft.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
