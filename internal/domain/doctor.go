package domain

import "time"

// Doctor is the domain model for physicians offering appointments.
type Doctor struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Specialization string
	Phone          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
