package models

import "time"

// Connection statuses. Rejecting a pending request deletes the row, which
// is the implicit "none" state.
const (
	ConnectionStatusPending  = "pending"
	ConnectionStatusAccepted = "accepted"
)

// Connection links two users. Stored directionally, unique per unordered pair.
type Connection struct {
	ID          int       `db:"id" json:"id"`
	RequesterID int       `db:"requester_id" json:"requester_id"`
	ReceiverID  int       `db:"receiver_id" json:"receiver_id"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
