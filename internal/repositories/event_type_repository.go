package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"career-service/internal/models"
)

var ErrEventTypeNotFound = errors.New("event type not found")

// EventTypeRepository abstracts bookable meeting template persistence.
type EventTypeRepository interface {
	CreateEventType(ctx context.Context, ownerID int, title string, lengthMinutes int) (models.EventType, error)
	GetEventType(ctx context.Context, eventTypeID int) (models.EventType, error)
	ListEventTypes(ctx context.Context, ownerID int) ([]models.EventType, error)
	DeleteEventType(ctx context.Context, eventTypeID, ownerID int) error
}

// EventTypeRepo is a sqlx implementation of EventTypeRepository.
type EventTypeRepo struct {
	db *sqlx.DB
}

// NewEventTypeRepo constructs an EventTypeRepo.
func NewEventTypeRepo(db *sqlx.DB) *EventTypeRepo {
	return &EventTypeRepo{db: db}
}

// CreateEventType inserts a template and snapshots the owner's current
// availability windows into the join table. Windows created later are not
// attached automatically.
func (r *EventTypeRepo) CreateEventType(ctx context.Context, ownerID int, title string, lengthMinutes int) (models.EventType, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.EventType{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var et models.EventType
	if err = tx.QueryRowxContext(ctx,
		`INSERT INTO event_types (owner_id, title, length_minutes) VALUES ($1, $2, $3)
         RETURNING id, owner_id, title, length_minutes, created_at`,
		ownerID, title, lengthMinutes).StructScan(&et); err != nil {
		return models.EventType{}, err
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO event_type_windows (event_type_id, window_id)
         SELECT $1, id FROM availability_windows WHERE owner_id=$2`,
		et.ID, ownerID); err != nil {
		return models.EventType{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.EventType{}, err
	}
	return et, nil
}

// GetEventType fetches a template with its snapshotted windows resolved.
func (r *EventTypeRepo) GetEventType(ctx context.Context, eventTypeID int) (models.EventType, error) {
	var et models.EventType
	err := r.db.GetContext(ctx, &et,
		`SELECT id, owner_id, title, length_minutes, created_at FROM event_types WHERE id=$1`, eventTypeID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EventType{}, ErrEventTypeNotFound
	}
	if err != nil {
		return models.EventType{}, err
	}

	err = r.db.SelectContext(ctx, &et.Windows,
		`SELECT w.id, w.owner_id, w.day_of_week, w.start_time, w.end_time, w.is_recurring, w.created_at
         FROM availability_windows w
         INNER JOIN event_type_windows etw ON etw.window_id = w.id
         WHERE etw.event_type_id=$1 ORDER BY w.id`, eventTypeID)
	return et, err
}

// ListEventTypes returns the owner's templates.
func (r *EventTypeRepo) ListEventTypes(ctx context.Context, ownerID int) ([]models.EventType, error) {
	var types []models.EventType
	err := r.db.SelectContext(ctx, &types,
		`SELECT id, owner_id, title, length_minutes, created_at FROM event_types WHERE owner_id=$1 ORDER BY created_at DESC`, ownerID)
	return types, err
}

// DeleteEventType removes a template and its join rows atomically.
func (r *EventTypeRepo) DeleteEventType(ctx context.Context, eventTypeID, ownerID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM event_type_windows WHERE event_type_id=$1`, eventTypeID); err != nil {
		return err
	}

	res, execErr := tx.ExecContext(ctx, `DELETE FROM event_types WHERE id=$1 AND owner_id=$2`, eventTypeID, ownerID)
	if execErr != nil {
		err = execErr
		return err
	}
	count, countErr := res.RowsAffected()
	if countErr != nil {
		err = countErr
		return err
	}
	if count == 0 {
		err = ErrEventTypeNotFound
		return err
	}

	return tx.Commit()
}
