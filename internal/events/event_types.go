package events

import (
	"time"

	"github.com/spec-kit/hospital-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentCreated       EventType = "appointment_created"
	EventAppointmentStatusChanged EventType = "appointment_status_changed"
	EventAppointmentCancelled     EventType = "appointment_cancelled"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role      domain.Role `json:"role"`
	SubjectID string      `json:"subject_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	AppointmentID string      `json:"appointment_id"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// AppointmentCreatedPayload payload.
type AppointmentCreatedPayload struct {
	PatientID string    `json:"patient_id"`
	DoctorID  *string   `json:"doctor_id,omitempty"`
	Date      time.Time `json:"date"`
}

// AppointmentStatusChangedPayload payload.
type AppointmentStatusChangedPayload struct {
	OldStatus domain.AppointmentStatus `json:"old_status"`
	NewStatus domain.AppointmentStatus `json:"new_status"`
}

// AppointmentCancelledPayload payload.
type AppointmentCancelledPayload struct {
	PatientID string `json:"patient_id"`
	Reason    string `json:"reason,omitempty"`
}
