package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hospital-service/internal/auth"
	"github.com/spec-kit/hospital-service/internal/config"
	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/repository"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

// dummyPasswordHash is compared against when an email lookup misses, so a
// miss costs roughly the same as a wrong password. It matches no input.
const dummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Account is the identity surface returned by login and registration.
type Account struct {
	ID    string
	Name  string
	Email string
	Role  domain.Role
}

// RegisterInput carries validated registration fields. Specialization is
// doctor-only; address is patient-only.
type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Specialization string
	Phone          string
	Address        string
}

// AuthService coordinates credential lookup, password verification and
// token issuance. It never mutates the credential store during login.
type AuthService struct {
	doctors    repository.DoctorRepository
	patients   repository.PatientRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	DoctorRepo  repository.DoctorRepository
	PatientRepo repository.PatientRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		doctors:    deps.DoctorRepo,
		patients:   deps.PatientRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account in the role's collection and issues a
// session token. Nothing is persisted unless the insert fully succeeds.
func (s *AuthService) Register(ctx context.Context, role domain.Role, input RegisterInput) (*Account, string, time.Time, error) {
	if !role.Valid() {
		return nil, "", time.Time{}, apperrors.NewValidationError("unknown role", nil)
	}

	if err := s.checkEmailFree(ctx, role, input.Email); err != nil {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	var account *Account
	switch role {
	case domain.RoleDoctor:
		doctor := &domain.Doctor{
			Name:           input.Name,
			Email:          input.Email,
			PasswordHash:   hash,
			Specialization: input.Specialization,
			Phone:          input.Phone,
		}
		if err := s.doctors.Create(ctx, doctor); err != nil {
			return nil, "", time.Time{}, apperrors.NewStoreUnavailable(err)
		}
		account = &Account{ID: doctor.ID, Name: doctor.Name, Email: doctor.Email, Role: role}
	case domain.RolePatient:
		patient := &domain.Patient{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hash,
			Phone:        input.Phone,
			Address:      input.Address,
		}
		if err := s.patients.Create(ctx, patient); err != nil {
			return nil, "", time.Time{}, apperrors.NewStoreUnavailable(err)
		}
		account = &Account{ID: patient.ID, Name: patient.Name, Email: patient.Email, Role: role}
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return account, token, exp, nil
}

// Login authenticates an account by (role, email, password) and issues a
// session token. Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, role domain.Role, email, password string) (*Account, string, time.Time, error) {
	if !role.Valid() {
		return nil, "", time.Time{}, apperrors.NewValidationError("unknown role", nil)
	}

	account, hash, err := s.lookupByEmail(ctx, role, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			// burn a compare so a miss is not cheaper than a mismatch
			_ = auth.ComparePassword(dummyPasswordHash, password)
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.NewStoreUnavailable(err)
	}

	if err := auth.ComparePassword(hash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return account, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) checkEmailFree(ctx context.Context, role domain.Role, email string) error {
	_, _, err := s.lookupByEmail(ctx, role, email)
	if err == nil {
		return apperrors.NewConflict("email already registered", map[string]any{"email": email})
	}
	if err != pgx.ErrNoRows {
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}

func (s *AuthService) lookupByEmail(ctx context.Context, role domain.Role, email string) (*Account, string, error) {
	switch role {
	case domain.RoleDoctor:
		doctor, err := s.doctors.GetByEmail(ctx, email)
		if err != nil {
			return nil, "", err
		}
		return &Account{ID: doctor.ID, Name: doctor.Name, Email: doctor.Email, Role: role}, doctor.PasswordHash, nil
	default:
		patient, err := s.patients.GetByEmail(ctx, email)
		if err != nil {
			return nil, "", err
		}
		return &Account{ID: patient.ID, Name: patient.Name, Email: patient.Email, Role: role}, patient.PasswordHash, nil
	}
}
