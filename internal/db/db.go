package db

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            first_name TEXT NOT NULL DEFAULT '',
            last_name TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS jobs (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            company TEXT NOT NULL,
            location TEXT NOT NULL DEFAULT '',
            url TEXT NOT NULL DEFAULT '',
            salary TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'saved',
            notes TEXT NOT NULL DEFAULT '',
            applied_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS offers (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            job_id INT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
            amount TEXT NOT NULL DEFAULT '',
            offer_date TIMESTAMPTZ NOT NULL,
            deadline TIMESTAMPTZ,
            notes TEXT NOT NULL DEFAULT '',
            UNIQUE(job_id)
        );`,
		`CREATE TABLE IF NOT EXISTS rejections (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            job_id INT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
            rejected_at TIMESTAMPTZ NOT NULL,
            reason TEXT NOT NULL DEFAULT '',
            UNIQUE(job_id)
        );`,
		`CREATE TABLE IF NOT EXISTS interviews (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            job_id INT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
            interview_date TIMESTAMPTZ NOT NULL,
            interview_type TEXT NOT NULL DEFAULT '',
            video_url TEXT,
            passcode TEXT,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS education (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            school TEXT NOT NULL,
            degree TEXT NOT NULL DEFAULT '',
            field_of_study TEXT NOT NULL DEFAULT '',
            start_year INT,
            end_year INT
        );`,
		`CREATE TABLE IF NOT EXISTS documents (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            file_name TEXT NOT NULL,
            object_key TEXT NOT NULL,
            content_type TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS availability_windows (
            id SERIAL PRIMARY KEY,
            owner_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            day_of_week INT NOT NULL DEFAULT 0,
            start_time TIMESTAMPTZ NOT NULL,
            end_time TIMESTAMPTZ NOT NULL,
            is_recurring BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS event_types (
            id SERIAL PRIMARY KEY,
            owner_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            length_minutes INT NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS event_type_windows (
            event_type_id INT NOT NULL REFERENCES event_types(id) ON DELETE CASCADE,
            window_id INT NOT NULL REFERENCES availability_windows(id) ON DELETE CASCADE,
            PRIMARY KEY(event_type_id, window_id)
        );`,
		`CREATE TABLE IF NOT EXISTS booked_events (
            id SERIAL PRIMARY KEY,
            creator_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            participant_name TEXT NOT NULL DEFAULT '',
            participant_email TEXT NOT NULL,
            event_type_id INT REFERENCES event_types(id) ON DELETE SET NULL,
            title TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL DEFAULT '',
            start_time TIMESTAMPTZ NOT NULL,
            end_time TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            UNIQUE(creator_id, start_time)
        );`,
		`CREATE TABLE IF NOT EXISTS connections (
            id SERIAL PRIMARY KEY,
            requester_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            receiver_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            status TEXT NOT NULL DEFAULT 'pending',
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_connection_pair
            ON connections (LEAST(requester_id, receiver_id), GREATEST(requester_id, receiver_id));`,
		`CREATE TABLE IF NOT EXISTS conversations (
            id SERIAL PRIMARY KEY,
            user1_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            user2_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            UNIQUE(user1_id, user2_id)
        );`,
		`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            conversation_id INT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
            sender_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            recipient_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            subject TEXT NOT NULL DEFAULT '',
            content TEXT NOT NULL,
            is_read_by_recipient BOOLEAN NOT NULL DEFAULT FALSE,
            deleted_by_sender BOOLEAN NOT NULL DEFAULT FALSE,
            deleted_by_recipient BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Println("database migrations applied")
	return nil
}
