package models

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is one concrete, dated, bookable time window materialized
// from a provider's weekly template. Instants are stored in UTC.
//
// Hidden marks a slot withdrawn from public listings because a booking is in
// flight or was declined; it does not by itself mean the slot is booked.
type AvailabilitySlot struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID uint      `gorm:"index" json:"provider_id"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// RecurrenceGroupID ties together every slot materialized from the same
	// (weekday, time range) pattern. Nil for ad hoc slots.
	RecurrenceGroupID *uuid.UUID `gorm:"type:uuid;index" json:"recurrence_group_id"`

	Hidden bool `gorm:"default:false" json:"hidden"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
