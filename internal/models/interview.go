package models

import "time"

// Interview is a tracked interview tied to a job application. It is
// independent of the booking calendar.
type Interview struct {
	ID            int       `db:"id" json:"id"`
	UserID        int       `db:"user_id" json:"user_id"`
	JobID         int       `db:"job_id" json:"job_id"`
	InterviewDate time.Time `db:"interview_date" json:"interview_date"`
	InterviewType string    `db:"interview_type" json:"interview_type"`
	VideoURL      *string   `db:"video_url" json:"video_url,omitempty"`
	Passcode      *string   `db:"passcode" json:"passcode,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Education is a profile education entry.
type Education struct {
	ID           int    `db:"id" json:"id"`
	UserID       int    `db:"user_id" json:"user_id"`
	School       string `db:"school" json:"school"`
	Degree       string `db:"degree" json:"degree"`
	FieldOfStudy string `db:"field_of_study" json:"field_of_study"`
	StartYear    *int   `db:"start_year" json:"start_year,omitempty"`
	EndYear      *int   `db:"end_year" json:"end_year,omitempty"`
}

// Document is metadata for a file uploaded to object storage.
type Document struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	ObjectKey   string    `db:"object_key" json:"object_key"`
	ContentType string    `db:"content_type" json:"content_type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
