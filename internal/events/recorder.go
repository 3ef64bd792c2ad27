package events

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/voluntree/scheduler/internal/models"
)

// Recorder is the audit subscriber: it persists every event to the event
// log table. External collaborators (mail, chat) subscribe the same way.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Handle(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entity := ""
	entityID := ""
	if ev.AppointmentID != nil {
		entity = "appointment"
		entityID = ev.AppointmentID.String()
	}

	row := models.EventLog{
		ProviderID: ev.ProviderID,
		Type:       ev.Type,
		Entity:     entity,
		EntityID:   entityID,
		Metadata:   metaJSON,
	}

	return r.db.Create(&row).Error
}
