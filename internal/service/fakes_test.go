package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/events"
	"github.com/spec-kit/hospital-service/internal/repository"
)

type fakeDoctorRepo struct {
	doctors  map[string]*domain.Doctor
	seq      int
	failWith error
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[string]*domain.Doctor)}
}

func (f *fakeDoctorRepo) Create(_ context.Context, doctor *domain.Doctor) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.seq++
	doctor.ID = fmt.Sprintf("doctor-%d", f.seq)
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = doctor.CreatedAt
	stored := *doctor
	f.doctors[doctor.ID] = &stored
	return nil
}

func (f *fakeDoctorRepo) Update(_ context.Context, doctor *domain.Doctor) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.doctors[doctor.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *doctor
	f.doctors[doctor.ID] = &stored
	return nil
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, id string) (*domain.Doctor, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	doctor, ok := f.doctors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *doctor
	return &found, nil
}

func (f *fakeDoctorRepo) GetByEmail(_ context.Context, email string) (*domain.Doctor, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, doctor := range f.doctors {
		if doctor.Email == email {
			found := *doctor
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeDoctorRepo) List(_ context.Context) ([]domain.Doctor, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	doctors := make([]domain.Doctor, 0, len(f.doctors))
	for _, doctor := range f.doctors {
		doctors = append(doctors, *doctor)
	}
	return doctors, nil
}

type fakePatientRepo struct {
	patients map[string]*domain.Patient
	seq      int
	failWith error
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[string]*domain.Patient)}
}

func (f *fakePatientRepo) Create(_ context.Context, patient *domain.Patient) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.seq++
	patient.ID = fmt.Sprintf("patient-%d", f.seq)
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt
	stored := *patient
	f.patients[patient.ID] = &stored
	return nil
}

func (f *fakePatientRepo) Update(_ context.Context, patient *domain.Patient) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.patients[patient.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *patient
	f.patients[patient.ID] = &stored
	return nil
}

func (f *fakePatientRepo) GetByID(_ context.Context, id string) (*domain.Patient, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	patient, ok := f.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *patient
	return &found, nil
}

func (f *fakePatientRepo) GetByEmail(_ context.Context, email string) (*domain.Patient, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, patient := range f.patients {
		if patient.Email == email {
			found := *patient
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePatientRepo) List(_ context.Context) ([]domain.Patient, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	patients := make([]domain.Patient, 0, len(f.patients))
	for _, patient := range f.patients {
		patients = append(patients, *patient)
	}
	return patients, nil
}

type fakeAppointmentRepo struct {
	appointments map[string]*domain.Appointment
	seq          int
	failWith     error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[string]*domain.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *domain.Appointment) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.seq++
	appointment.ID = fmt.Sprintf("appt-%d", f.seq)
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt
	stored := *appointment
	f.appointments[appointment.ID] = &stored
	return nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, appointment *domain.Appointment) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.appointments[appointment.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *appointment
	f.appointments[appointment.ID] = &stored
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.appointments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	appointment, ok := f.appointments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *appointment
	return &found, nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	appointments := make([]domain.Appointment, 0, len(f.appointments))
	for _, appointment := range f.appointments {
		if filter.PatientID != nil && appointment.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && (appointment.DoctorID == nil || *appointment.DoctorID != *filter.DoctorID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, appointment.Status) {
			continue
		}
		appointments = append(appointments, *appointment)
	}
	return appointments, nil
}

func containsStatus(statuses []domain.AppointmentStatus, status domain.AppointmentStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

type fakeDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (f *fakeDispatcher) Publish(_ context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, event)
	return nil
}

func (f *fakeDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (f *fakeDispatcher) events() []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.Event{}, f.published...)
}
