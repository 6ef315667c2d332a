package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-backend/internal/domain"
)

// SubmissionRepository define el contrato de persistencia para el formulario de contacto.
// No hay update ni delete: una submission es inmutable.
type SubmissionRepository interface {
	Create(ctx context.Context, submission domain.Submission) error
	ListNewestFirst(ctx context.Context) ([]domain.Submission, error)
}

// PgSubmissionRepository implementa SubmissionRepository usando pgxpool.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

func (r *PgSubmissionRepository) Create(ctx context.Context, submission domain.Submission) error {
	const query = `
		INSERT INTO contact_form (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		submission.ID,
		submission.Name,
		submission.Email,
		submission.Message,
		submission.CreatedAt,
	)
	return err
}

func (r *PgSubmissionRepository) ListNewestFirst(ctx context.Context) ([]domain.Submission, error) {
	const query = `
		SELECT id, name, email, message, created_at
		FROM contact_form
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]domain.Submission, 0)
	for rows.Next() {
		var s domain.Submission
		err = rows.Scan(
			&s.ID,
			&s.Name,
			&s.Email,
			&s.Message,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return submissions, nil
}
