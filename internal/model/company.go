package model

import "time"

// Company is the tenant boundary: every other record is scoped to one.
type Company struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"size:256;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
