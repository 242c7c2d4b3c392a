package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"career-service/internal/models"
)

func TestEventsToICal(t *testing.T) {
	events := []models.BookedEvent{{
		ID:               7,
		Title:            "Intro call",
		Description:      "30 minute chat",
		ParticipantEmail: "sam@example.com",
		StartTime:        time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
		EndTime:          time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC),
		CreatedAt:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}}

	out := EventsToICal(events)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Intro call")
	assert.Contains(t, out, "booked-event-7@career-service")
	assert.Contains(t, out, "sam@example.com")
}

func TestInterviewsToICalIncludesJobContext(t *testing.T) {
	interviews := []models.Interview{{
		ID:            3,
		JobID:         4,
		InterviewType: "technical",
		InterviewDate: time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC),
	}}
	jobs := map[int]models.Job{4: {ID: 4, Title: "Backend Engineer", Company: "Acme"}}

	out := InterviewsToICal(interviews, jobs)

	assert.Contains(t, out, "technical interview - Backend Engineer (Acme)")
	assert.Contains(t, out, "interview-3@career-service")
}
