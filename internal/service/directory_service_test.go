package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/service"
)

func TestListDoctorsOmitsPasswordHash(t *testing.T) {
	doctors := newFakeDoctorRepo()
	patients := newFakePatientRepo()
	ctx := context.Background()

	doctor := &domain.Doctor{
		Name:           "Dr. A",
		Email:          "a@b.com",
		PasswordHash:   "$2a$12$secret",
		Specialization: "cardiology",
	}
	assert.NoError(t, doctors.Create(ctx, doctor))

	svc := service.NewDirectoryService(doctors, patients, nil, zap.NewNop())

	profiles, err := svc.ListDoctors(ctx)
	assert.NoError(t, err)
	assert.Len(t, profiles, 1)
	assert.Equal(t, doctor.ID, profiles[0].ID)
	assert.Equal(t, "cardiology", profiles[0].Specialization)
}

func TestGetDoctorNotFound(t *testing.T) {
	svc := service.NewDirectoryService(newFakeDoctorRepo(), newFakePatientRepo(), nil, zap.NewNop())

	_, err := svc.GetDoctor(context.Background(), "missing")
	assert.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestGetPatient(t *testing.T) {
	doctors := newFakeDoctorRepo()
	patients := newFakePatientRepo()
	ctx := context.Background()

	patient := &domain.Patient{Name: "Pat", Email: "pat@example.com", PasswordHash: "x", Address: "12 Elm St"}
	assert.NoError(t, patients.Create(ctx, patient))

	svc := service.NewDirectoryService(doctors, patients, nil, zap.NewNop())

	profile, err := svc.GetPatient(ctx, patient.ID)
	assert.NoError(t, err)
	assert.Equal(t, "12 Elm St", profile.Address)

	_, err = svc.GetPatient(ctx, "missing")
	assert.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}
