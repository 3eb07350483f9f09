package domain

import "time"

// AppointmentStatus enumerates lifecycle states for appointments.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Terminal reports whether no further transitions are allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// Appointment is the aggregate for a patient visit.
type Appointment struct {
	ID          string
	PatientID   string
	DoctorID    *string
	Description string
	Status      AppointmentStatus
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
