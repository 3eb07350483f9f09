package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hospital-service/internal/domain"
)

// DoctorRepository defines persistence access for doctors.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *domain.Doctor) error
	Update(ctx context.Context, doctor *domain.Doctor) error
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Doctor, error)
	List(ctx context.Context) ([]domain.Doctor, error)
}

type doctorRepository struct {
	pool *pgxpool.Pool
}

// NewDoctorRepository returns a Postgres-backed implementation.
func NewDoctorRepository(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepository{pool: pool}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        INSERT INTO doctors (name, email, password_hash, specialization, phone)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		doctor.Name,
		doctor.Email,
		doctor.PasswordHash,
		doctor.Specialization,
		doctor.Phone,
	).Scan(&doctor.ID, &doctor.CreatedAt, &doctor.UpdatedAt)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        UPDATE doctors SET name=$1, email=$2, password_hash=$3, specialization=$4, phone=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		doctor.Name,
		doctor.Email,
		doctor.PasswordHash,
		doctor.Specialization,
		doctor.Phone,
		doctor.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	const query = `
        SELECT id, name, email, password_hash, specialization, phone, created_at, updated_at
        FROM doctors WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	const query = `
        SELECT id, name, email, password_hash, specialization, phone, created_at, updated_at
        FROM doctors WHERE email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *doctorRepository) List(ctx context.Context) ([]domain.Doctor, error) {
	const query = `
        SELECT id, name, email, password_hash, specialization, phone, created_at, updated_at
        FROM doctors ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doctors := make([]domain.Doctor, 0)
	for rows.Next() {
		var doctor domain.Doctor
		if err := rows.Scan(
			&doctor.ID,
			&doctor.Name,
			&doctor.Email,
			&doctor.PasswordHash,
			&doctor.Specialization,
			&doctor.Phone,
			&doctor.CreatedAt,
			&doctor.UpdatedAt,
		); err != nil {
			return nil, err
		}
		doctors = append(doctors, doctor)
	}
	return doctors, rows.Err()
}

func (r *doctorRepository) scanOne(row pgx.Row) (*domain.Doctor, error) {
	var doctor domain.Doctor
	if err := row.Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Email,
		&doctor.PasswordHash,
		&doctor.Specialization,
		&doctor.Phone,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &doctor, nil
}
