package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/events"
	"github.com/spec-kit/hospital-service/internal/repository"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

// Actor identifies the authenticated caller inside service methods.
type Actor struct {
	Role domain.Role
	ID   string
}

// AppointmentCreateInput describes appointment creation payload.
type AppointmentCreateInput struct {
	PatientID   string
	DoctorID    *string
	Description string
	Date        time.Time
}

// AppointmentUpdateInput describes mutable appointment fields. Nil fields
// are left unchanged.
type AppointmentUpdateInput struct {
	DoctorID    *string
	Description *string
	Date        *time.Time
	Status      *domain.AppointmentStatus
}

// AppointmentListFilter describes listing filters.
type AppointmentListFilter struct {
	Statuses []domain.AppointmentStatus
	Limit    int
	Offset   int
}

// AppointmentService coordinates appointment workflows.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	patients     repository.PatientRepository
	dispatcher   events.Dispatcher
}

// AppointmentDependencies bundles repositories for appointment service.
type AppointmentDependencies struct {
	AppointmentRepo repository.AppointmentRepository
	DoctorRepo      repository.DoctorRepository
	PatientRepo     repository.PatientRepository
	Dispatcher      events.Dispatcher
}

// NewAppointmentService constructs the service.
func NewAppointmentService(deps AppointmentDependencies) *AppointmentService {
	return &AppointmentService{
		appointments: deps.AppointmentRepo,
		doctors:      deps.DoctorRepo,
		patients:     deps.PatientRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// Create books a new appointment. Patients book for themselves; doctors may
// book on behalf of any existing patient.
func (s *AppointmentService) Create(ctx context.Context, actor Actor, input AppointmentCreateInput) (*domain.Appointment, error) {
	patientID := input.PatientID
	if actor.Role == domain.RolePatient {
		patientID = actor.ID
	}
	if patientID == "" {
		return nil, apperrors.NewValidationError("patient_id required", nil)
	}

	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("patient", map[string]any{"patient_id": patientID})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	doctorID := input.DoctorID
	if doctorID == nil && actor.Role == domain.RoleDoctor {
		id := actor.ID
		doctorID = &id
	}
	if doctorID != nil {
		if _, err := s.doctors.GetByID(ctx, *doctorID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("doctor", map[string]any{"doctor_id": *doctorID})
			}
			return nil, apperrors.NewStoreUnavailable(err)
		}
	}

	appointment := &domain.Appointment{
		PatientID:   patientID,
		DoctorID:    doctorID,
		Description: input.Description,
		Status:      domain.AppointmentStatusScheduled,
		Date:        input.Date,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.publish(ctx, actor, events.EventAppointmentCreated, appointment.ID, events.AppointmentCreatedPayload{
		PatientID: appointment.PatientID,
		DoctorID:  appointment.DoctorID,
		Date:      appointment.Date,
	})
	return appointment, nil
}

// Get returns a single appointment visible to the actor.
func (s *AppointmentService) Get(ctx context.Context, actor Actor, id string) (*domain.Appointment, error) {
	appointment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// List returns appointments visible to the actor. Patients see their own;
// doctors see the whole schedule.
func (s *AppointmentService) List(ctx context.Context, actor Actor, filter AppointmentListFilter) ([]domain.Appointment, error) {
	repoFilter := repository.AppointmentFilter{
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	if actor.Role == domain.RolePatient {
		repoFilter.PatientID = &actor.ID
	}

	appointments, err := s.appointments.List(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return appointments, nil
}

// Update mutates appointment fields, policing status transitions: only
// Scheduled appointments may move, and only to Completed or Cancelled.
func (s *AppointmentService) Update(ctx context.Context, actor Actor, id string, input AppointmentUpdateInput) (*domain.Appointment, error) {
	appointment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, appointment); err != nil {
		return nil, err
	}

	oldStatus := appointment.Status

	if input.DoctorID != nil {
		if _, err := s.doctors.GetByID(ctx, *input.DoctorID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("doctor", map[string]any{"doctor_id": *input.DoctorID})
			}
			return nil, apperrors.NewStoreUnavailable(err)
		}
		appointment.DoctorID = input.DoctorID
	}
	if input.Description != nil {
		appointment.Description = *input.Description
	}
	if input.Date != nil {
		appointment.Date = *input.Date
	}
	if input.Status != nil && *input.Status != oldStatus {
		if oldStatus.Terminal() {
			return nil, apperrors.NewConflict("appointment already finalized", map[string]any{"status": oldStatus})
		}
		switch *input.Status {
		case domain.AppointmentStatusCompleted, domain.AppointmentStatusCancelled:
			appointment.Status = *input.Status
		default:
			return nil, apperrors.NewValidationError("invalid status transition", map[string]any{"status": *input.Status})
		}
	}

	if err := s.appointments.Update(ctx, appointment); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("appointment", nil)
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	if appointment.Status != oldStatus {
		s.publish(ctx, actor, events.EventAppointmentStatusChanged, appointment.ID, events.AppointmentStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: appointment.Status,
		})
	}
	return appointment, nil
}

// Delete removes an appointment record.
func (s *AppointmentService) Delete(ctx context.Context, actor Actor, id string) error {
	appointment, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, appointment); err != nil {
		return err
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("appointment", nil)
		}
		return apperrors.NewStoreUnavailable(err)
	}

	s.publish(ctx, actor, events.EventAppointmentCancelled, id, events.AppointmentCancelledPayload{
		PatientID: appointment.PatientID,
	})
	return nil
}

func (s *AppointmentService) load(ctx context.Context, id string) (*domain.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("appointment", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return appointment, nil
}

func (s *AppointmentService) authorize(actor Actor, appointment *domain.Appointment) error {
	if actor.Role == domain.RoleDoctor {
		return nil
	}
	if appointment.PatientID != actor.ID {
		return apperrors.NewForbidden("appointment belongs to another patient")
	}
	return nil
}

func (s *AppointmentService) publish(ctx context.Context, actor Actor, eventType events.EventType, appointmentID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		AppointmentID: appointmentID,
		Actor:         events.Actor{Role: actor.Role, SubjectID: actor.ID},
		Timestamp:     time.Now(),
		Payload:       payload,
	})
}
