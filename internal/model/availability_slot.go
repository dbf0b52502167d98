package model

import "time"

// AvailabilitySlot reserves one TM for one time window on one date. Slots
// back-reference the schedule that created them so releasing a schedule can
// free its capacity; the reference does not control the slot's lifecycle.
type AvailabilitySlot struct {
	ID         int64     `gorm:"autoIncrement;primaryKey"`
	CompanyID  string    `gorm:"index;size:36;not null"`
	TMID       string    `gorm:"index:idx_slot_tm_date;size:36;not null"`
	SlotDate   time.Time `gorm:"index:idx_slot_tm_date;not null"` // midnight UTC
	StartTime  time.Time `gorm:"not null"`
	EndTime    time.Time `gorm:"not null"`
	ScheduleID string    `gorm:"index;size:36;not null"`
}
