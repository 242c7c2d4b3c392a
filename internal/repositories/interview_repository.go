package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"career-service/internal/models"
)

var ErrInterviewNotFound = errors.New("interview not found")

// InterviewRepository abstracts tracked interview persistence.
type InterviewRepository interface {
	CreateInterview(ctx context.Context, iv models.Interview) (models.Interview, error)
	GetInterview(ctx context.Context, interviewID int) (models.Interview, error)
	ListInterviews(ctx context.Context, userID int) ([]models.Interview, error)
	UpdateInterview(ctx context.Context, iv models.Interview) (models.Interview, error)
	DeleteInterview(ctx context.Context, interviewID, userID int) error
}

// InterviewRepo is a sqlx implementation of InterviewRepository.
type InterviewRepo struct {
	db *sqlx.DB
}

// NewInterviewRepo constructs an InterviewRepo.
func NewInterviewRepo(db *sqlx.DB) *InterviewRepo {
	return &InterviewRepo{db: db}
}

// CreateInterview inserts a tracked interview.
func (r *InterviewRepo) CreateInterview(ctx context.Context, iv models.Interview) (models.Interview, error) {
	var created models.Interview
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO interviews (user_id, job_id, interview_date, interview_type, video_url, passcode)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id, user_id, job_id, interview_date, interview_type, video_url, passcode, created_at`,
		iv.UserID, iv.JobID, iv.InterviewDate, iv.InterviewType, iv.VideoURL, iv.Passcode).
		StructScan(&created)
	return created, err
}

// GetInterview fetches an interview by id.
func (r *InterviewRepo) GetInterview(ctx context.Context, interviewID int) (models.Interview, error) {
	var iv models.Interview
	err := r.db.GetContext(ctx, &iv,
		`SELECT id, user_id, job_id, interview_date, interview_type, video_url, passcode, created_at FROM interviews WHERE id=$1`, interviewID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Interview{}, ErrInterviewNotFound
	}
	return iv, err
}

// ListInterviews returns the user's interviews ordered by date.
func (r *InterviewRepo) ListInterviews(ctx context.Context, userID int) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.SelectContext(ctx, &interviews,
		`SELECT id, user_id, job_id, interview_date, interview_type, video_url, passcode, created_at
         FROM interviews WHERE user_id=$1 ORDER BY interview_date ASC`, userID)
	return interviews, err
}

// UpdateInterview rewrites the mutable fields of an interview.
func (r *InterviewRepo) UpdateInterview(ctx context.Context, iv models.Interview) (models.Interview, error) {
	var updated models.Interview
	err := r.db.QueryRowxContext(ctx,
		`UPDATE interviews SET interview_date=$1, interview_type=$2, video_url=$3, passcode=$4
         WHERE id=$5
         RETURNING id, user_id, job_id, interview_date, interview_type, video_url, passcode, created_at`,
		iv.InterviewDate, iv.InterviewType, iv.VideoURL, iv.Passcode, iv.ID).
		StructScan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Interview{}, ErrInterviewNotFound
	}
	return updated, err
}

// DeleteInterview removes an interview owned by the user.
func (r *InterviewRepo) DeleteInterview(ctx context.Context, interviewID, userID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM interviews WHERE id=$1 AND user_id=$2`, interviewID, userID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrInterviewNotFound
	}
	return nil
}
