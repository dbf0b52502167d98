package model

import "time"

// PushSubscription holds a dispatcher browser's push subscription. Every
// subscription registered for a company is notified when one of its
// schedules is committed.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	CompanyID string    `gorm:"index;size:36;not null"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
