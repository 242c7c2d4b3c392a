package models

import "time"

// Job statuses form the application pipeline.
const (
	JobStatusSaved     = "saved"
	JobStatusApplied   = "applied"
	JobStatusInterview = "interview"
	JobStatusOffer     = "offer"
	JobStatusRejected  = "rejected"
)

// ValidJobStatus reports whether s is a known pipeline status.
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusSaved, JobStatusApplied, JobStatusInterview, JobStatusOffer, JobStatusRejected:
		return true
	}
	return false
}

// TerminalJobStatus reports whether s ends the pipeline.
func TerminalJobStatus(s string) bool {
	return s == JobStatusOffer || s == JobStatusRejected
}

// Job is a tracked job application.
type Job struct {
	ID        int        `db:"id" json:"id"`
	UserID    int        `db:"user_id" json:"user_id"`
	Title     string     `db:"title" json:"title"`
	Company   string     `db:"company" json:"company"`
	Location  string     `db:"location" json:"location"`
	URL       string     `db:"url" json:"url"`
	Salary    string     `db:"salary" json:"salary"`
	Status    string     `db:"status" json:"status"`
	Notes     string     `db:"notes" json:"notes"`
	AppliedAt *time.Time `db:"applied_at" json:"applied_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Offer records an accepted outcome for a job.
type Offer struct {
	ID        int        `db:"id" json:"id"`
	UserID    int        `db:"user_id" json:"user_id"`
	JobID     int        `db:"job_id" json:"job_id"`
	Amount    string     `db:"amount" json:"amount"`
	OfferDate time.Time  `db:"offer_date" json:"offer_date"`
	Deadline  *time.Time `db:"deadline" json:"deadline,omitempty"`
	Notes     string     `db:"notes" json:"notes"`
}

// Rejection records a rejected outcome for a job.
type Rejection struct {
	ID         int       `db:"id" json:"id"`
	UserID     int       `db:"user_id" json:"user_id"`
	JobID      int       `db:"job_id" json:"job_id"`
	RejectedAt time.Time `db:"rejected_at" json:"rejected_at"`
	Reason     string    `db:"reason" json:"reason"`
}
