package events

import (
	"context"
	"time"
)

// Routing keys of the ledger exchange.
const (
	BedReserved              = "bed.reserved"
	BedReleased              = "bed.released"
	PatientAdmitted          = "patient.admitted"
	PatientDischarged        = "patient.discharged"
	AppointmentStatusChanged = "appointment.status_changed"
	LedgerInvariantViolation = "ledger.invariant_violation"
)

// Event is the JSON body of every published message.
type Event struct {
	Type       string      `json:"type"`
	HospitalID string      `json:"hospital_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

func New(eventType, hospitalID string, data interface{}) Event {
	return Event{
		Type:       eventType,
		HospitalID: hospitalID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
