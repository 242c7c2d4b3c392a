package calendar

import (
	"fmt"

	ics "github.com/arran4/golang-ical"

	"career-service/internal/models"
)

// EventsToICal renders booked events as an iCalendar document.
func EventsToICal(events []models.BookedEvent) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//career-service//booked events//EN")

	for _, ev := range events {
		item := cal.AddEvent(fmt.Sprintf("booked-event-%d@career-service", ev.ID))
		item.SetCreatedTime(ev.CreatedAt)
		item.SetStartAt(ev.StartTime)
		item.SetEndAt(ev.EndTime)
		item.SetSummary(ev.Title)
		if ev.Description != "" {
			item.SetDescription(ev.Description)
		}
		item.AddAttendee(ev.ParticipantEmail)
	}

	return cal.Serialize()
}

// InterviewsToICal renders tracked interviews as an iCalendar document.
// Interviews carry only a start; a one hour block is assumed for display.
func InterviewsToICal(interviews []models.Interview, jobsByID map[int]models.Job) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//career-service//interviews//EN")

	for _, iv := range interviews {
		item := cal.AddEvent(fmt.Sprintf("interview-%d@career-service", iv.ID))
		item.SetCreatedTime(iv.CreatedAt)
		item.SetStartAt(iv.InterviewDate)
		item.SetEndAt(iv.InterviewDate.Add(interviewBlock))
		summary := iv.InterviewType + " interview"
		if job, ok := jobsByID[iv.JobID]; ok {
			summary = fmt.Sprintf("%s interview - %s (%s)", iv.InterviewType, job.Title, job.Company)
		}
		item.SetSummary(summary)
		if iv.VideoURL != nil {
			item.SetLocation(*iv.VideoURL)
		}
	}

	return cal.Serialize()
}
