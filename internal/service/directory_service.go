package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/repository"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

const (
	doctorDirectoryCacheKey = "directory:doctors:v1"
	doctorDirectoryCacheTTL = 60 * time.Second
)

// DoctorProfile is the public view of a doctor. Password hashes never
// leave the repository layer through this service.
type DoctorProfile struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

// PatientProfile is the public view of a patient.
type PatientProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// DirectoryService serves doctor/patient listings, caching the doctor
// directory in Redis.
type DirectoryService struct {
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
	cache    *redis.Client
	logger   *zap.Logger
}

// NewDirectoryService constructs the service. cache may be nil.
func NewDirectoryService(doctors repository.DoctorRepository, patients repository.PatientRepository, cache *redis.Client, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{doctors: doctors, patients: patients, cache: cache, logger: logger}
}

// ListDoctors returns all doctor profiles, serving from cache when fresh.
func (s *DirectoryService) ListDoctors(ctx context.Context) ([]DoctorProfile, error) {
	if cached := s.cachedDoctors(ctx); cached != nil {
		return cached, nil
	}

	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	profiles := make([]DoctorProfile, 0, len(doctors))
	for i := range doctors {
		profiles = append(profiles, doctorProfile(&doctors[i]))
	}

	s.storeDoctors(ctx, profiles)
	return profiles, nil
}

// GetDoctor returns one doctor profile by id.
func (s *DirectoryService) GetDoctor(ctx context.Context, id string) (*DoctorProfile, error) {
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("doctor", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	profile := doctorProfile(doctor)
	return &profile, nil
}

// ListPatients returns all patient profiles.
func (s *DirectoryService) ListPatients(ctx context.Context) ([]PatientProfile, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	profiles := make([]PatientProfile, 0, len(patients))
	for i := range patients {
		profiles = append(profiles, patientProfile(&patients[i]))
	}
	return profiles, nil
}

// GetPatient returns one patient profile by id.
func (s *DirectoryService) GetPatient(ctx context.Context, id string) (*PatientProfile, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("patient", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	profile := patientProfile(patient)
	return &profile, nil
}

// InvalidateDoctors drops the cached doctor directory.
func (s *DirectoryService) InvalidateDoctors(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, doctorDirectoryCacheKey).Err(); err != nil {
		s.logger.Warn("doctor directory cache invalidation failed", zap.Error(err))
	}
}

func (s *DirectoryService) cachedDoctors(ctx context.Context) []DoctorProfile {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, doctorDirectoryCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("doctor directory cache read failed", zap.Error(err))
		}
		return nil
	}
	var profiles []DoctorProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil
	}
	return profiles
}

func (s *DirectoryService) storeDoctors(ctx context.Context, profiles []DoctorProfile) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(profiles)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, doctorDirectoryCacheKey, raw, doctorDirectoryCacheTTL).Err(); err != nil {
		s.logger.Warn("doctor directory cache write failed", zap.Error(err))
	}
}

func doctorProfile(doctor *domain.Doctor) DoctorProfile {
	return DoctorProfile{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Email:          doctor.Email,
		Specialization: doctor.Specialization,
		Phone:          doctor.Phone,
	}
}

func patientProfile(patient *domain.Patient) PatientProfile {
	return PatientProfile{
		ID:      patient.ID,
		Name:    patient.Name,
		Email:   patient.Email,
		Phone:   patient.Phone,
		Address: patient.Address,
	}
}
