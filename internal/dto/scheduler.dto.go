package dto

import (
	"time"

	"github.com/google/uuid"
)

type SlotDTO struct {
	ID                uuid.UUID  `json:"id"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           time.Time  `json:"end_time"`
	RecurrenceGroupID *uuid.UUID `json:"recurrence_group_id,omitempty"`
	Hidden            bool       `json:"hidden"`
	Protected         bool       `json:"protected"`
}

type PublicSlotDTO struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type AppointmentListDTO struct {
	ID            uuid.UUID `json:"id"`
	SlotID        uuid.UUID `json:"slot_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	RequesterID   string    `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
}
