package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"career-service/internal/models"
)

var ErrEducationNotFound = errors.New("education entry not found")

// EducationRepository abstracts education entry persistence.
type EducationRepository interface {
	CreateEducation(ctx context.Context, entry models.Education) (models.Education, error)
	ListEducation(ctx context.Context, userID int) ([]models.Education, error)
	UpdateEducation(ctx context.Context, entry models.Education) (models.Education, error)
	DeleteEducation(ctx context.Context, entryID, userID int) error
}

// EducationRepo is a sqlx implementation of EducationRepository.
type EducationRepo struct {
	db *sqlx.DB
}

// NewEducationRepo constructs an EducationRepo.
func NewEducationRepo(db *sqlx.DB) *EducationRepo {
	return &EducationRepo{db: db}
}

// CreateEducation inserts an education entry.
func (r *EducationRepo) CreateEducation(ctx context.Context, entry models.Education) (models.Education, error) {
	var created models.Education
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO education (user_id, school, degree, field_of_study, start_year, end_year)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id, user_id, school, degree, field_of_study, start_year, end_year`,
		entry.UserID, entry.School, entry.Degree, entry.FieldOfStudy, entry.StartYear, entry.EndYear).
		StructScan(&created)
	return created, err
}

// ListEducation returns the user's education entries.
func (r *EducationRepo) ListEducation(ctx context.Context, userID int) ([]models.Education, error) {
	var entries []models.Education
	err := r.db.SelectContext(ctx, &entries,
		`SELECT id, user_id, school, degree, field_of_study, start_year, end_year FROM education WHERE user_id=$1 ORDER BY start_year DESC NULLS LAST`, userID)
	return entries, err
}

// UpdateEducation rewrites an education entry owned by the user.
func (r *EducationRepo) UpdateEducation(ctx context.Context, entry models.Education) (models.Education, error) {
	var updated models.Education
	err := r.db.QueryRowxContext(ctx,
		`UPDATE education SET school=$1, degree=$2, field_of_study=$3, start_year=$4, end_year=$5
         WHERE id=$6 AND user_id=$7
         RETURNING id, user_id, school, degree, field_of_study, start_year, end_year`,
		entry.School, entry.Degree, entry.FieldOfStudy, entry.StartYear, entry.EndYear, entry.ID, entry.UserID).
		StructScan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Education{}, ErrEducationNotFound
	}
	return updated, err
}

// DeleteEducation removes an entry owned by the user.
func (r *EducationRepo) DeleteEducation(ctx context.Context, entryID, userID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM education WHERE id=$1 AND user_id=$2`, entryID, userID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrEducationNotFound
	}
	return nil
}
