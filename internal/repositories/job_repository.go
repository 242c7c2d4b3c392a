package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"career-service/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

// JobRepository abstracts job application persistence.
type JobRepository interface {
	CreateJob(ctx context.Context, job models.Job) (models.Job, error)
	GetJob(ctx context.Context, jobID int) (models.Job, error)
	ListJobs(ctx context.Context, userID int) ([]models.Job, error)
	UpdateJob(ctx context.Context, job models.Job) (models.Job, error)
	UpdateJobStatus(ctx context.Context, jobID int, status string, appliedAt *time.Time) error
	DeleteJob(ctx context.Context, jobID int) error
}

// JobRepo is a sqlx implementation of JobRepository.
type JobRepo struct {
	db *sqlx.DB
}

// NewJobRepo constructs a JobRepo.
func NewJobRepo(db *sqlx.DB) *JobRepo {
	return &JobRepo{db: db}
}

// CreateJob inserts a job application.
func (r *JobRepo) CreateJob(ctx context.Context, job models.Job) (models.Job, error) {
	var created models.Job
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO jobs (user_id, title, company, location, url, salary, status, notes, applied_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, user_id, title, company, location, url, salary, status, notes, applied_at, created_at`,
		job.UserID, job.Title, job.Company, job.Location, job.URL, job.Salary, job.Status, job.Notes, job.AppliedAt).
		StructScan(&created)
	return created, err
}

// GetJob fetches a job by id.
func (r *JobRepo) GetJob(ctx context.Context, jobID int) (models.Job, error) {
	var job models.Job
	err := r.db.GetContext(ctx, &job,
		`SELECT id, user_id, title, company, location, url, salary, status, notes, applied_at, created_at FROM jobs WHERE id=$1`, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Job{}, ErrJobNotFound
	}
	return job, err
}

// ListJobs returns the user's applications, newest first.
func (r *JobRepo) ListJobs(ctx context.Context, userID int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.SelectContext(ctx, &jobs,
		`SELECT id, user_id, title, company, location, url, salary, status, notes, applied_at, created_at
         FROM jobs WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	return jobs, err
}

// UpdateJob rewrites the mutable fields of a job.
func (r *JobRepo) UpdateJob(ctx context.Context, job models.Job) (models.Job, error) {
	var updated models.Job
	err := r.db.QueryRowxContext(ctx,
		`UPDATE jobs SET title=$1, company=$2, location=$3, url=$4, salary=$5, notes=$6
         WHERE id=$7
         RETURNING id, user_id, title, company, location, url, salary, status, notes, applied_at, created_at`,
		job.Title, job.Company, job.Location, job.URL, job.Salary, job.Notes, job.ID).
		StructScan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Job{}, ErrJobNotFound
	}
	return updated, err
}

// UpdateJobStatus moves a job through the pipeline.
func (r *JobRepo) UpdateJobStatus(ctx context.Context, jobID int, status string, appliedAt *time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status=$1, applied_at=COALESCE($2, applied_at) WHERE id=$3`, status, appliedAt, jobID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrJobNotFound
	}
	return nil
}

// DeleteJob removes a job and its dependent rows via cascade.
func (r *JobRepo) DeleteJob(ctx context.Context, jobID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id=$1`, jobID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrJobNotFound
	}
	return nil
}
