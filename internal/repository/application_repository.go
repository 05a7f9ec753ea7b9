package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// ApplicationRepository manages job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	Exists(ctx context.Context, jobID, applicantID int64) (bool, error)
	ListByApplicant(ctx context.Context, applicantID int64) ([]domain.Application, error)
	List(ctx context.Context) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error
	Delete(ctx context.Context, id int64) error
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository builds repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationSelect = `
        SELECT a.id, a.job_id, a.applicant_id, a.applicant_resume_url, a.status, a.created_at,
               COALESCE(j.title, ''), COALESCE(j.description, ''), COALESCE(j.company_name, ''),
               COALESCE(u.name, '')
        FROM applications a
        LEFT JOIN jobs j ON j.id = a.job_id
        LEFT JOIN users u ON u.id = a.applicant_id`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (job_id, applicant_id, applicant_resume_url, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		app.JobID,
		app.ApplicantID,
		app.ApplicantResumeURL,
		string(app.Status),
	).Scan(&app.ID, &app.CreatedAt)
	return translate(err, applicationsUniqueKey, ErrAlreadyApplied)
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	return scanApplication(r.pool.QueryRow(ctx, applicationSelect+` WHERE a.id=$1`, id))
}

func (r *applicationRepository) Exists(ctx context.Context, jobID, applicantID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE job_id=$1 AND applicant_id=$2)`,
		jobID, applicantID,
	).Scan(&exists)
	return exists, err
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID int64) ([]domain.Application, error) {
	return r.query(ctx, applicationSelect+` WHERE a.applicant_id=$1 ORDER BY a.created_at DESC`, applicantID)
}

func (r *applicationRepository) List(ctx context.Context) ([]domain.Application, error) {
	return r.query(ctx, applicationSelect+` ORDER BY a.created_at DESC`)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	const query = `UPDATE applications SET status=$1, updated_at=NOW() WHERE id=$2`
	return execOne(ctx, r.pool, query, string(status), id)
}

func (r *applicationRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.pool, `DELETE FROM applications WHERE id=$1`, id)
}

func (r *applicationRepository) query(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *app)
	}
	return result, rows.Err()
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var (
		app       domain.Application
		rawStatus string
	)
	if err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.ApplicantID,
		&app.ApplicantResumeURL,
		&rawStatus,
		&app.CreatedAt,
		&app.JobTitle,
		&app.JobDescription,
		&app.CompanyName,
		&app.ApplicantName,
	); err != nil {
		return nil, err
	}

	status, err := domain.ParseApplicationStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("application %d: %w", app.ID, err)
	}
	app.Status = status
	return &app, nil
}
