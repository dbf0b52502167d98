package model

import "time"

// Client is a customer receiving concrete deliveries.
type Client struct {
	ID            string `gorm:"primaryKey;size:36"`
	CompanyID     string `gorm:"index;size:36;not null"`
	Name          string `gorm:"size:256;not null"`
	Address       string `gorm:"size:512"`
	ContactName   string `gorm:"size:256"`
	ContactNumber string `gorm:"size:32"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
