package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"career-service/internal/models"
)

var ErrWindowNotFound = errors.New("availability window not found")

// AvailabilityRepository abstracts availability window persistence.
type AvailabilityRepository interface {
	CreateWindow(ctx context.Context, w models.AvailabilityWindow) (models.AvailabilityWindow, error)
	ListWindows(ctx context.Context, ownerID int) ([]models.AvailabilityWindow, error)
	ResetWindowsForDate(ctx context.Context, ownerID int, date time.Time) error
}

// AvailabilityRepo is a sqlx implementation of AvailabilityRepository.
type AvailabilityRepo struct {
	db *sqlx.DB
}

// NewAvailabilityRepo constructs an AvailabilityRepo.
func NewAvailabilityRepo(db *sqlx.DB) *AvailabilityRepo {
	return &AvailabilityRepo{db: db}
}

// CreateWindow inserts an availability window.
func (r *AvailabilityRepo) CreateWindow(ctx context.Context, w models.AvailabilityWindow) (models.AvailabilityWindow, error) {
	var created models.AvailabilityWindow
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO availability_windows (owner_id, day_of_week, start_time, end_time, is_recurring)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id, owner_id, day_of_week, start_time, end_time, is_recurring, created_at`,
		w.OwnerID, w.DayOfWeek, w.StartTime, w.EndTime, w.IsRecurring).
		StructScan(&created)
	return created, err
}

// ListWindows returns the owner's windows ordered by creation.
func (r *AvailabilityRepo) ListWindows(ctx context.Context, ownerID int) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := r.db.SelectContext(ctx, &windows,
		`SELECT id, owner_id, day_of_week, start_time, end_time, is_recurring, created_at
         FROM availability_windows WHERE owner_id=$1 ORDER BY id`, ownerID)
	return windows, err
}

// ResetWindowsForDate deletes every recurring window matching the date's
// weekday and every one-off window inside the day bounds, together with
// their event type associations, in one transaction. Idempotent.
func (r *AvailabilityRepo) ResetWindowsForDate(ctx context.Context, ownerID int, date time.Time) error {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)
	weekday := int(dayStart.Weekday())

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	selectQ := `SELECT id FROM availability_windows
        WHERE owner_id=$1 AND (
            (is_recurring = TRUE AND day_of_week=$2)
            OR (is_recurring = FALSE AND start_time >= $3 AND start_time < $4)
        )`
	var ids []int
	if err = tx.SelectContext(ctx, &ids, selectQ, ownerID, weekday, dayStart, dayEnd); err != nil {
		return err
	}
	if len(ids) == 0 {
		return tx.Commit()
	}

	query, args, buildErr := sqlx.In(`DELETE FROM event_type_windows WHERE window_id IN (?)`, ids)
	if buildErr != nil {
		err = buildErr
		return err
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return err
	}

	query, args, buildErr = sqlx.In(`DELETE FROM availability_windows WHERE id IN (?)`, ids)
	if buildErr != nil {
		err = buildErr
		return err
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return err
	}

	return tx.Commit()
}
