package domain

import "time"

// Patient is the domain model for patients booking appointments.
type Patient struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
