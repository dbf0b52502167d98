package model

import "time"

// Plant is a batching plant transit mixers are based at.
type Plant struct {
	ID        string `gorm:"primaryKey;size:36"`
	CompanyID string `gorm:"index;size:36;not null"`
	Name      string `gorm:"size:256;not null"`
	Location  string `gorm:"size:256"`
	Address   string `gorm:"size:512"`
	Status    string `gorm:"size:16;not null;default:active"` // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	TransitMixers []TransitMixer `gorm:"foreignKey:PlantID" json:"-"`
}
