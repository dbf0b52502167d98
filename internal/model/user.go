package model

import "time"

// User is an operator account belonging to a company.
type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	CompanyID    string `gorm:"index;size:36;not null"`
	Email        string `gorm:"uniqueIndex;size:256;not null"`
	Name         string `gorm:"size:256"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Associations
	Company Company `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
