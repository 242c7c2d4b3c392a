package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"career-service/internal/models"
)

var (
	ErrConnectionNotFound = errors.New("connection not found")
	ErrConnectionExists   = errors.New("connection already exists")
)

// ConnectionRepository abstracts the social graph persistence.
type ConnectionRepository interface {
	CreateRequest(ctx context.Context, requesterID, receiverID int) (models.Connection, error)
	GetConnection(ctx context.Context, connectionID int) (models.Connection, error)
	UpdateStatus(ctx context.Context, connectionID int, status string) error
	DeleteConnection(ctx context.Context, connectionID int) error
	ListAccepted(ctx context.Context, userID int) ([]models.Connection, error)
	ListPending(ctx context.Context, receiverID int) ([]models.Connection, error)
	AreConnected(ctx context.Context, userA, userB int) (bool, error)
}

// ConnectionRepo is a sqlx implementation of ConnectionRepository.
type ConnectionRepo struct {
	db *sqlx.DB
}

// NewConnectionRepo constructs a ConnectionRepo.
func NewConnectionRepo(db *sqlx.DB) *ConnectionRepo {
	return &ConnectionRepo{db: db}
}

// CreateRequest inserts a pending request. The unique index on the
// unordered pair rejects duplicates in either direction.
func (r *ConnectionRepo) CreateRequest(ctx context.Context, requesterID, receiverID int) (models.Connection, error) {
	var conn models.Connection
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO connections (requester_id, receiver_id, status) VALUES ($1, $2, $3)
         RETURNING id, requester_id, receiver_id, status, created_at`,
		requesterID, receiverID, models.ConnectionStatusPending).StructScan(&conn)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return models.Connection{}, ErrConnectionExists
	}
	return conn, err
}

// GetConnection fetches a connection by id.
func (r *ConnectionRepo) GetConnection(ctx context.Context, connectionID int) (models.Connection, error) {
	var conn models.Connection
	err := r.db.GetContext(ctx, &conn,
		`SELECT id, requester_id, receiver_id, status, created_at FROM connections WHERE id=$1`, connectionID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Connection{}, ErrConnectionNotFound
	}
	return conn, err
}

// UpdateStatus sets the connection status.
func (r *ConnectionRepo) UpdateStatus(ctx context.Context, connectionID int, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE connections SET status=$1 WHERE id=$2`, status, connectionID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

// DeleteConnection removes the row, returning the pair to the implicit
// "none" state.
func (r *ConnectionRepo) DeleteConnection(ctx context.Context, connectionID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM connections WHERE id=$1`, connectionID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

// ListAccepted returns the user's accepted connections.
func (r *ConnectionRepo) ListAccepted(ctx context.Context, userID int) ([]models.Connection, error) {
	var conns []models.Connection
	err := r.db.SelectContext(ctx, &conns,
		`SELECT id, requester_id, receiver_id, status, created_at FROM connections
         WHERE (requester_id=$1 OR receiver_id=$1) AND status=$2 ORDER BY created_at DESC`,
		userID, models.ConnectionStatusAccepted)
	return conns, err
}

// ListPending returns incoming requests awaiting the receiver.
func (r *ConnectionRepo) ListPending(ctx context.Context, receiverID int) ([]models.Connection, error) {
	var conns []models.Connection
	err := r.db.SelectContext(ctx, &conns,
		`SELECT id, requester_id, receiver_id, status, created_at FROM connections
         WHERE receiver_id=$1 AND status=$2 ORDER BY created_at DESC`,
		receiverID, models.ConnectionStatusPending)
	return conns, err
}

// AreConnected reports whether two users share an accepted connection.
func (r *ConnectionRepo) AreConnected(ctx context.Context, userA, userB int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM connections
         WHERE status=$3 AND ((requester_id=$1 AND receiver_id=$2) OR (requester_id=$2 AND receiver_id=$1)))`,
		userA, userB, models.ConnectionStatusAccepted)
	return exists, err
}
