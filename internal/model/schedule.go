package model

import "time"

// ScheduleStatus is the lifecycle state of a schedule. A draft has no trip
// table; a generated schedule has a computed but unreserved table; a
// committed schedule holds calendar reservations for its vehicles.
type ScheduleStatus string

const (
	StatusDraft     ScheduleStatus = "draft"
	StatusGenerated ScheduleStatus = "generated"
	StatusCommitted ScheduleStatus = "committed"
)

// Schedule is one planned delivery: the input parameters, the derived
// sizing figures and, once generated, the ordered trip table.
type Schedule struct {
	ID          string `gorm:"primaryKey;size:36"`
	CompanyID   string `gorm:"index;size:36;not null"`
	ClientID    string `gorm:"index;size:36;not null"`
	SiteAddress string `gorm:"size:512"`

	// Input parameters. Durations are stored in minutes, the unit
	// dispatchers plan in.
	Quantity      float64 `gorm:"not null"` // m³
	PumpingSpeed  float64 `gorm:"not null"` // m³/h
	OnwardTimeMin int     `gorm:"not null"`
	ReturnTimeMin int     `gorm:"not null"`
	BufferTimeMin int     `gorm:"not null"`

	// Derived, never user-supplied.
	TMCapacity       float64 // fleet average at generation time, m³
	UnloadingTimeMin int
	PumpingHours     float64
	TMCount          int

	Status    ScheduleStatus `gorm:"size:16;not null;default:draft"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`

	// Associations
	Trips  []Trip `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE"`
	Client Client `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Trip is one row of a schedule's output table. Owned by its schedule:
// created and destroyed with it.
type Trip struct {
	ID         int64  `gorm:"autoIncrement;primaryKey" json:"-"`
	ScheduleID string `gorm:"index;size:36;not null" json:"-"`
	TripNo     int    `gorm:"not null"`
	TMID       string `gorm:"size:36;not null"`

	PlantStart   time.Time `gorm:"not null"`
	PumpStart    time.Time `gorm:"not null"`
	UnloadingEnd time.Time `gorm:"not null"`
	ReturnAt     time.Time `gorm:"column:return_at;not null"`

	CushionMin int     // minutes queued at the pump before unloading
	Volume     float64 // m³ delivered by this trip
}
