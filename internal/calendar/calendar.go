package calendar

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/tmhire/tmhire-backend/internal/model"
)

// ConflictError reports a booking attempt that overlaps an existing
// committed slot. It carries enough detail for a dispatcher to pick a
// different vehicle or start time.
type ConflictError struct {
	TMID  string
	Start time.Time
	End   time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("tm %s is already booked between %s and %s",
		e.TMID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// Calendar is the interval-conflict index over (TM, date). Booking is
// all-or-nothing: the overlap check and the insert run inside one
// transaction guarded by per-(TM, date) mutexes, so two concurrent commits
// cannot both observe "no conflict" and double-book a vehicle.
type Calendar struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a calendar over the given database.
func New(db *gorm.DB) *Calendar {
	return &Calendar{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}
}

func (c *Calendar) lockFor(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	return l
}

func slotKey(tmID string, date time.Time) string {
	return tmID + "|" + date.Format("2006-01-02")
}

// DateOf truncates an instant to its UTC calendar date, the granularity the
// slot index is keyed by.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Book records the given slots, or none of them. Returns a *ConflictError
// naming the first offending TM and interval if any slot overlaps a
// committed one for the same TM and date.
func (c *Calendar) Book(ctx context.Context, slots []model.AvailabilitySlot) error {
	if len(slots) == 0 {
		return nil
	}

	// Acquire the per-(TM, date) locks in sorted order so two bookings over
	// overlapping vehicle sets cannot deadlock.
	seen := make(map[string]struct{})
	var keys []string
	for _, s := range slots {
		key := slotKey(s.TMID, s.SlotDate)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		l := c.lockFor(key)
		l.Lock()
		defer l.Unlock()
	}

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range slots {
			var overlapping int64
			err := tx.Model(&model.AvailabilitySlot{}).
				Where("tm_id = ? AND slot_date = ? AND start_time < ? AND end_time > ?",
					s.TMID, s.SlotDate, s.EndTime, s.StartTime).
				Count(&overlapping).Error
			if err != nil {
				return fmt.Errorf("failed to check slot overlap for tm %s: %w", s.TMID, err)
			}
			if overlapping > 0 {
				return &ConflictError{TMID: s.TMID, Start: s.StartTime, End: s.EndTime}
			}
		}
		if err := tx.Create(&slots).Error; err != nil {
			return fmt.Errorf("failed to record availability slots: %w", err)
		}
		return nil
	})
}

// Release removes every slot owned by the given schedule, freeing that
// capacity for future bookings.
func (c *Calendar) Release(ctx context.Context, scheduleID string) error {
	if err := c.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Delete(&model.AvailabilitySlot{}).Error; err != nil {
		return fmt.Errorf("failed to release slots for schedule %s: %w", scheduleID, err)
	}
	return nil
}

// Query returns the committed slots for one TM on one date, ordered by
// start instant. Read-only; used for calendar display.
func (c *Calendar) Query(ctx context.Context, companyID, tmID string, date time.Time) ([]model.AvailabilitySlot, error) {
	var slots []model.AvailabilitySlot
	err := c.db.WithContext(ctx).
		Where("company_id = ? AND tm_id = ? AND slot_date = ?", companyID, tmID, DateOf(date)).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query slots for tm %s: %w", tmID, err)
	}
	return slots, nil
}
