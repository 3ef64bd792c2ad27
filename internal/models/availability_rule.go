package models

import "time"

// AvailabilityRule is one (weekday, time range) entry of a provider's weekly
// template. A weekday with several ranges has several rows. Times are local
// wall-clock "HH:MM" strings interpreted in the organization timezone.
type AvailabilityRule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index" json:"provider_id"`

	Weekday int `json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
