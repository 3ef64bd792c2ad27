package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SlotID     uuid.UUID `gorm:"type:uuid;index" json:"slot_id"`
	ProviderID uint      `gorm:"index" json:"provider_id"`

	// RequesterID is the opaque, pre-validated identifier supplied by the
	// identity collaborator. Never interpreted, only stored and compared.
	RequesterID   string `gorm:"size:100;not null" json:"requester_id"`
	RequesterName string `gorm:"size:100" json:"requester_name"`

	// Copied from the slot at booking time so the appointment stays
	// historically accurate if the slot is later deleted.
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status             string `gorm:"size:20;default:'pending'" json:"status"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`

	CancelledAt *time.Time `json:"cancelled_at"`
	ConfirmedAt *time.Time `json:"confirmed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
