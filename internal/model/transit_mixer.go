package model

import "time"

// TransitMixer is a delivery vehicle carrying a fixed volume per trip.
type TransitMixer struct {
	ID         string  `gorm:"primaryKey;size:36"`
	CompanyID  string  `gorm:"index;size:36;not null"`
	PlantID    *string `gorm:"index;size:36"`
	Identifier string  `gorm:"size:64;not null"` // fleet label, e.g. "TM-A"
	Capacity   float64 `gorm:"not null"`         // m³ per load
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Associations
	Plant *Plant `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}
