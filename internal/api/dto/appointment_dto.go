package dto

import (
	"time"

	"github.com/spec-kit/hospital-service/internal/domain"
)

// CreateAppointmentRequest payload.
type CreateAppointmentRequest struct {
	PatientID   string    `json:"patient_id"`
	DoctorID    *string   `json:"doctor_id"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// UpdateAppointmentRequest payload; nil fields are left unchanged.
type UpdateAppointmentRequest struct {
	DoctorID    *string                   `json:"doctor_id"`
	Description *string                   `json:"description"`
	Date        *time.Time                `json:"date"`
	Status      *domain.AppointmentStatus `json:"status"`
}

// AppointmentResponse full appointment view.
type AppointmentResponse struct {
	ID          string                   `json:"id"`
	PatientID   string                   `json:"patient_id"`
	DoctorID    *string                  `json:"doctor_id"`
	Description string                   `json:"description"`
	Status      domain.AppointmentStatus `json:"status"`
	Date        time.Time                `json:"date"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}
