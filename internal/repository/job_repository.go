package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// JobFilter captures listing parameters for the public and admin job lists.
type JobFilter struct {
	Status         *domain.JobStatus
	EmploymentType *domain.EmploymentType
	Category       *string
	Location       *string
	SearchTerm     *string
	Limit          int
	Offset         int
}

// JobRepository encapsulates job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]domain.Job, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobSelect = `
        SELECT j.id, j.title, j.description, j.company_name, j.company_logo_url, j.location,
               j.skills_required, j.experience, j.salary::float8, j.category, j.employment_type,
               j.status, j.posted_by, COALESCE(u.name, ''), j.created_at
        FROM jobs j
        LEFT JOIN users u ON u.id = j.posted_by`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, description, company_name, company_logo_url, location, skills_required,
                          experience, salary, category, employment_type, status, posted_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		job.Title,
		job.Description,
		job.CompanyName,
		job.CompanyLogoURL,
		job.Location,
		nonNil(job.SkillsRequired),
		job.Experience,
		job.Salary,
		job.Category,
		string(job.EmploymentType),
		string(job.Status),
		job.PostedBy,
	).Scan(&job.ID, &job.CreatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, description=$2, company_name=$3, company_logo_url=$4, location=$5,
            skills_required=$6, experience=$7, salary=$8, category=$9, employment_type=$10, status=$11,
            updated_at=NOW()
        WHERE id=$12`
	return execOne(ctx, r.pool, query,
		job.Title,
		job.Description,
		job.CompanyName,
		job.CompanyLogoURL,
		job.Location,
		nonNil(job.SkillsRequired),
		job.Experience,
		job.Salary,
		job.Category,
		string(job.EmploymentType),
		string(job.Status),
		job.ID,
	)
}

func (r *jobRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.pool, `DELETE FROM jobs WHERE id=$1`, id)
}

func (r *jobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	return scanJob(r.pool.QueryRow(ctx, jobSelect+` WHERE j.id=$1`, id))
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		clauses = append(clauses, fmt.Sprintf("j.status=$%d", len(args)))
	}
	if filter.EmploymentType != nil {
		args = append(args, string(*filter.EmploymentType))
		clauses = append(clauses, fmt.Sprintf("j.employment_type=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("LOWER(j.category)=LOWER($%d)", len(args)))
	}
	if filter.Location != nil {
		args = append(args, "%"+strings.ToLower(*filter.Location)+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(j.location) LIKE $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(j.title) LIKE %s OR LOWER(j.company_name) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY j.created_at DESC LIMIT %d OFFSET %d`,
		jobSelect, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func scanJobs(rows pgx.Rows) ([]domain.Job, error) {
	var result []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *job)
	}
	return result, rows.Err()
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		job                       domain.Job
		rawEmployment, rawStatus string
	)
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.CompanyName,
		&job.CompanyLogoURL,
		&job.Location,
		&job.SkillsRequired,
		&job.Experience,
		&job.Salary,
		&job.Category,
		&rawEmployment,
		&rawStatus,
		&job.PostedBy,
		&job.PostedByName,
		&job.CreatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if job.EmploymentType, err = domain.ParseEmploymentType(rawEmployment); err != nil {
		return nil, fmt.Errorf("job %d: %w", job.ID, err)
	}
	if job.Status, err = domain.ParseJobStatus(rawStatus); err != nil {
		return nil, fmt.Errorf("job %d: %w", job.ID, err)
	}
	return &job, nil
}
