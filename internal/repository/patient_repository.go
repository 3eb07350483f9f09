package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hospital-service/internal/domain"
)

// PatientRepository defines persistence access for patients.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	Update(ctx context.Context, patient *domain.Patient) error
	GetByID(ctx context.Context, id string) (*domain.Patient, error)
	GetByEmail(ctx context.Context, email string) (*domain.Patient, error)
	List(ctx context.Context) ([]domain.Patient, error)
}

type patientRepository struct {
	pool *pgxpool.Pool
}

// NewPatientRepository returns a Postgres-backed implementation.
func NewPatientRepository(pool *pgxpool.Pool) PatientRepository {
	return &patientRepository{pool: pool}
}

func (r *patientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	const query = `
        INSERT INTO patients (name, email, password_hash, phone, address)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		patient.Name,
		patient.Email,
		patient.PasswordHash,
		patient.Phone,
		patient.Address,
	).Scan(&patient.ID, &patient.CreatedAt, &patient.UpdatedAt)
}

func (r *patientRepository) Update(ctx context.Context, patient *domain.Patient) error {
	const query = `
        UPDATE patients SET name=$1, email=$2, password_hash=$3, phone=$4, address=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		patient.Name,
		patient.Email,
		patient.PasswordHash,
		patient.Phone,
		patient.Address,
		patient.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	const query = `
        SELECT id, name, email, password_hash, phone, address, created_at, updated_at
        FROM patients WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *patientRepository) GetByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	const query = `
        SELECT id, name, email, password_hash, phone, address, created_at, updated_at
        FROM patients WHERE email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *patientRepository) List(ctx context.Context) ([]domain.Patient, error) {
	const query = `
        SELECT id, name, email, password_hash, phone, address, created_at, updated_at
        FROM patients ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patients := make([]domain.Patient, 0)
	for rows.Next() {
		var patient domain.Patient
		if err := rows.Scan(
			&patient.ID,
			&patient.Name,
			&patient.Email,
			&patient.PasswordHash,
			&patient.Phone,
			&patient.Address,
			&patient.CreatedAt,
			&patient.UpdatedAt,
		); err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}
	return patients, rows.Err()
}

func (r *patientRepository) scanOne(row pgx.Row) (*domain.Patient, error) {
	var patient domain.Patient
	if err := row.Scan(
		&patient.ID,
		&patient.Name,
		&patient.Email,
		&patient.PasswordHash,
		&patient.Phone,
		&patient.Address,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &patient, nil
}
