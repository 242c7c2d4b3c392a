package models

import "time"

// AvailabilityWindow is a time range during which a user is bookable.
// Recurring windows repeat weekly on DayOfWeek with the time-of-day taken
// from StartTime/EndTime; one-off windows carry the full date.
type AvailabilityWindow struct {
	ID          int       `db:"id" json:"id"`
	OwnerID     int       `db:"owner_id" json:"owner_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	IsRecurring bool      `db:"is_recurring" json:"is_recurring"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// EventType is a named fixed-duration meeting template.
type EventType struct {
	ID            int       `db:"id" json:"id"`
	OwnerID       int       `db:"owner_id" json:"owner_id"`
	Title         string    `db:"title" json:"title"`
	LengthMinutes int       `db:"length_minutes" json:"length_minutes"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	// Windows snapshotted at creation time, resolved on fetch.
	Windows []AvailabilityWindow `json:"windows,omitempty"`
}

// BookedEvent is a concrete scheduled meeting between a creator (the
// calendar owner) and a participant, who need not be a platform user.
type BookedEvent struct {
	ID               int       `db:"id" json:"id"`
	CreatorID        int       `db:"creator_id" json:"creator_id"`
	ParticipantName  string    `db:"participant_name" json:"participant_name"`
	ParticipantEmail string    `db:"participant_email" json:"participant_email"`
	EventTypeID      *int      `db:"event_type_id" json:"event_type_id,omitempty"`
	Title            string    `db:"title" json:"title"`
	Description      string    `db:"description" json:"description"`
	StartTime        time.Time `db:"start_time" json:"start_time"`
	EndTime          time.Time `db:"end_time" json:"end_time"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
