package dto

import (
	"time"

	"github.com/spec-kit/hospital-service/internal/domain"
)

// RegisterRequest payload for new accounts. Specialization applies to
// doctors, address to patients.
type RegisterRequest struct {
	Role           domain.Role `json:"role"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Password       string      `json:"password"`
	Specialization string      `json:"specialization"`
	Phone          string      `json:"phone"`
	Address        string      `json:"address"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Role     domain.Role `json:"role"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
}

// AccountResponse identity surface returned by auth endpoints.
type AccountResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
