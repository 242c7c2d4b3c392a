package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"career-service/internal/models"
)

var (
	ErrEventNotFound = errors.New("booked event not found")
	ErrSlotTaken     = errors.New("slot already booked")
)

// EventRepository abstracts booked event persistence.
type EventRepository interface {
	CreateBookedEvent(ctx context.Context, ev models.BookedEvent) (models.BookedEvent, error)
	GetBookedEvent(ctx context.Context, eventID int) (models.BookedEvent, error)
	ListBookedInRange(ctx context.Context, creatorID int, from, to time.Time) ([]models.BookedEvent, error)
	ListEventsForUser(ctx context.Context, userID int, email string) ([]models.BookedEvent, error)
	RescheduleBookedEvent(ctx context.Context, eventID int, start, end time.Time) (models.BookedEvent, error)
	DeleteBookedEvent(ctx context.Context, eventID int) error
}

// EventRepo is a sqlx implementation of EventRepository.
type EventRepo struct {
	db *sqlx.DB
}

// NewEventRepo constructs an EventRepo.
func NewEventRepo(db *sqlx.DB) *EventRepo {
	return &EventRepo{db: db}
}

// CreateBookedEvent inserts a booking after locking and checking for an
// overlapping event for the same creator inside one transaction. The
// UNIQUE(creator_id, start_time) constraint backstops concurrent inserts
// the lock does not cover.
func (r *EventRepo) CreateBookedEvent(ctx context.Context, ev models.BookedEvent) (models.BookedEvent, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.BookedEvent{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var conflictID int
	err = tx.GetContext(ctx, &conflictID,
		`SELECT id FROM booked_events
         WHERE creator_id=$1 AND start_time < $3 AND end_time > $2
         LIMIT 1 FOR UPDATE`,
		ev.CreatorID, ev.StartTime, ev.EndTime)
	if err == nil {
		err = ErrSlotTaken
		return models.BookedEvent{}, err
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.BookedEvent{}, err
	}

	var created models.BookedEvent
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO booked_events
            (creator_id, participant_name, participant_email, event_type_id, title, description, start_time, end_time)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, creator_id, participant_name, participant_email, event_type_id, title, description, start_time, end_time, created_at`,
		ev.CreatorID, ev.ParticipantName, ev.ParticipantEmail, ev.EventTypeID, ev.Title, ev.Description, ev.StartTime, ev.EndTime).
		StructScan(&created)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		err = ErrSlotTaken
		return models.BookedEvent{}, err
	}
	if err != nil {
		return models.BookedEvent{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.BookedEvent{}, err
	}
	return created, nil
}

// GetBookedEvent fetches a booking by id.
func (r *EventRepo) GetBookedEvent(ctx context.Context, eventID int) (models.BookedEvent, error) {
	var ev models.BookedEvent
	err := r.db.GetContext(ctx, &ev,
		`SELECT id, creator_id, participant_name, participant_email, event_type_id, title, description, start_time, end_time, created_at
         FROM booked_events WHERE id=$1`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BookedEvent{}, ErrEventNotFound
	}
	return ev, err
}

// ListBookedInRange returns the creator's bookings overlapping [from, to).
func (r *EventRepo) ListBookedInRange(ctx context.Context, creatorID int, from, to time.Time) ([]models.BookedEvent, error) {
	var events []models.BookedEvent
	err := r.db.SelectContext(ctx, &events,
		`SELECT id, creator_id, participant_name, participant_email, event_type_id, title, description, start_time, end_time, created_at
         FROM booked_events
         WHERE creator_id=$1 AND start_time < $3 AND end_time > $2
         ORDER BY start_time`, creatorID, from, to)
	return events, err
}

// ListEventsForUser returns bookings where the user is the creator or the
// participant (matched by email).
func (r *EventRepo) ListEventsForUser(ctx context.Context, userID int, email string) ([]models.BookedEvent, error) {
	var events []models.BookedEvent
	err := r.db.SelectContext(ctx, &events,
		`SELECT id, creator_id, participant_name, participant_email, event_type_id, title, description, start_time, end_time, created_at
         FROM booked_events
         WHERE creator_id=$1 OR participant_email=$2
         ORDER BY start_time`, userID, email)
	return events, err
}

// RescheduleBookedEvent moves a booking, re-checking conflicts for the
// creator inside the same transaction.
func (r *EventRepo) RescheduleBookedEvent(ctx context.Context, eventID int, start, end time.Time) (models.BookedEvent, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.BookedEvent{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var creatorID int
	err = tx.GetContext(ctx, &creatorID, `SELECT creator_id FROM booked_events WHERE id=$1 FOR UPDATE`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrEventNotFound
		return models.BookedEvent{}, err
	}
	if err != nil {
		return models.BookedEvent{}, err
	}

	var conflictID int
	err = tx.GetContext(ctx, &conflictID,
		`SELECT id FROM booked_events
         WHERE creator_id=$1 AND id<>$2 AND start_time < $4 AND end_time > $3
         LIMIT 1 FOR UPDATE`,
		creatorID, eventID, start, end)
	if err == nil {
		err = ErrSlotTaken
		return models.BookedEvent{}, err
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.BookedEvent{}, err
	}

	var updated models.BookedEvent
	err = tx.QueryRowxContext(ctx,
		`UPDATE booked_events SET start_time=$1, end_time=$2 WHERE id=$3
         RETURNING id, creator_id, participant_name, participant_email, event_type_id, title, description, start_time, end_time, created_at`,
		start, end, eventID).StructScan(&updated)
	if err != nil {
		return models.BookedEvent{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.BookedEvent{}, err
	}
	return updated, nil
}

// DeleteBookedEvent removes a booking, freeing its slot.
func (r *EventRepo) DeleteBookedEvent(ctx context.Context, eventID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM booked_events WHERE id=$1`, eventID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrEventNotFound
	}
	return nil
}
