package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"career-service/internal/models"
	"career-service/internal/repositories"
)

var (
	_ repositories.UserRepository         = (*UserRepositoryMock)(nil)
	_ repositories.JobRepository          = (*JobRepositoryMock)(nil)
	_ repositories.OutcomeRepository      = (*OutcomeRepositoryMock)(nil)
	_ repositories.InterviewRepository    = (*InterviewRepositoryMock)(nil)
	_ repositories.EducationRepository    = (*EducationRepositoryMock)(nil)
	_ repositories.DocumentRepository     = (*DocumentRepositoryMock)(nil)
	_ repositories.AvailabilityRepository = (*AvailabilityRepositoryMock)(nil)
	_ repositories.EventTypeRepository    = (*EventTypeRepositoryMock)(nil)
	_ repositories.EventRepository        = (*EventRepositoryMock)(nil)
	_ repositories.ConnectionRepository   = (*ConnectionRepositoryMock)(nil)
	_ repositories.MessageRepository      = (*MessageRepositoryMock)(nil)
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, email, passwordHash, firstName, lastName string) (models.User, error) {
	args := m.Called(ctx, email, passwordHash, firstName, lastName)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, id int) (models.User, error) {
	args := m.Called(ctx, id)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUsersByEmails(ctx context.Context, emails []string) ([]models.User, error) {
	args := m.Called(ctx, emails)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

type JobRepositoryMock struct {
	mock.Mock
}

func (m *JobRepositoryMock) CreateJob(ctx context.Context, job models.Job) (models.Job, error) {
	args := m.Called(ctx, job)
	var created models.Job
	if val := args.Get(0); val != nil {
		created = val.(models.Job)
	}
	return created, args.Error(1)
}

func (m *JobRepositoryMock) GetJob(ctx context.Context, jobID int) (models.Job, error) {
	args := m.Called(ctx, jobID)
	var job models.Job
	if val := args.Get(0); val != nil {
		job = val.(models.Job)
	}
	return job, args.Error(1)
}

func (m *JobRepositoryMock) ListJobs(ctx context.Context, userID int) ([]models.Job, error) {
	args := m.Called(ctx, userID)
	var jobs []models.Job
	if val := args.Get(0); val != nil {
		jobs = val.([]models.Job)
	}
	return jobs, args.Error(1)
}

func (m *JobRepositoryMock) UpdateJob(ctx context.Context, job models.Job) (models.Job, error) {
	args := m.Called(ctx, job)
	var updated models.Job
	if val := args.Get(0); val != nil {
		updated = val.(models.Job)
	}
	return updated, args.Error(1)
}

func (m *JobRepositoryMock) UpdateJobStatus(ctx context.Context, jobID int, status string, appliedAt *time.Time) error {
	args := m.Called(ctx, jobID, status, appliedAt)
	return args.Error(0)
}

func (m *JobRepositoryMock) DeleteJob(ctx context.Context, jobID int) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

type OutcomeRepositoryMock struct {
	mock.Mock
}

func (m *OutcomeRepositoryMock) CreateOffer(ctx context.Context, offer models.Offer) (models.Offer, error) {
	args := m.Called(ctx, offer)
	var created models.Offer
	if val := args.Get(0); val != nil {
		created = val.(models.Offer)
	}
	return created, args.Error(1)
}

func (m *OutcomeRepositoryMock) ListOffers(ctx context.Context, userID int) ([]models.Offer, error) {
	args := m.Called(ctx, userID)
	var offers []models.Offer
	if val := args.Get(0); val != nil {
		offers = val.([]models.Offer)
	}
	return offers, args.Error(1)
}

func (m *OutcomeRepositoryMock) DeleteOffer(ctx context.Context, offerID, userID int) error {
	args := m.Called(ctx, offerID, userID)
	return args.Error(0)
}

func (m *OutcomeRepositoryMock) CreateRejection(ctx context.Context, rejection models.Rejection) (models.Rejection, error) {
	args := m.Called(ctx, rejection)
	var created models.Rejection
	if val := args.Get(0); val != nil {
		created = val.(models.Rejection)
	}
	return created, args.Error(1)
}

func (m *OutcomeRepositoryMock) ListRejections(ctx context.Context, userID int) ([]models.Rejection, error) {
	args := m.Called(ctx, userID)
	var rejections []models.Rejection
	if val := args.Get(0); val != nil {
		rejections = val.([]models.Rejection)
	}
	return rejections, args.Error(1)
}

func (m *OutcomeRepositoryMock) DeleteRejection(ctx context.Context, rejectionID, userID int) error {
	args := m.Called(ctx, rejectionID, userID)
	return args.Error(0)
}

type InterviewRepositoryMock struct {
	mock.Mock
}

func (m *InterviewRepositoryMock) CreateInterview(ctx context.Context, iv models.Interview) (models.Interview, error) {
	args := m.Called(ctx, iv)
	var created models.Interview
	if val := args.Get(0); val != nil {
		created = val.(models.Interview)
	}
	return created, args.Error(1)
}

func (m *InterviewRepositoryMock) GetInterview(ctx context.Context, interviewID int) (models.Interview, error) {
	args := m.Called(ctx, interviewID)
	var iv models.Interview
	if val := args.Get(0); val != nil {
		iv = val.(models.Interview)
	}
	return iv, args.Error(1)
}

func (m *InterviewRepositoryMock) ListInterviews(ctx context.Context, userID int) ([]models.Interview, error) {
	args := m.Called(ctx, userID)
	var interviews []models.Interview
	if val := args.Get(0); val != nil {
		interviews = val.([]models.Interview)
	}
	return interviews, args.Error(1)
}

func (m *InterviewRepositoryMock) UpdateInterview(ctx context.Context, iv models.Interview) (models.Interview, error) {
	args := m.Called(ctx, iv)
	var updated models.Interview
	if val := args.Get(0); val != nil {
		updated = val.(models.Interview)
	}
	return updated, args.Error(1)
}

func (m *InterviewRepositoryMock) DeleteInterview(ctx context.Context, interviewID, userID int) error {
	args := m.Called(ctx, interviewID, userID)
	return args.Error(0)
}

type EducationRepositoryMock struct {
	mock.Mock
}

func (m *EducationRepositoryMock) CreateEducation(ctx context.Context, entry models.Education) (models.Education, error) {
	args := m.Called(ctx, entry)
	var created models.Education
	if val := args.Get(0); val != nil {
		created = val.(models.Education)
	}
	return created, args.Error(1)
}

func (m *EducationRepositoryMock) ListEducation(ctx context.Context, userID int) ([]models.Education, error) {
	args := m.Called(ctx, userID)
	var entries []models.Education
	if val := args.Get(0); val != nil {
		entries = val.([]models.Education)
	}
	return entries, args.Error(1)
}

func (m *EducationRepositoryMock) UpdateEducation(ctx context.Context, entry models.Education) (models.Education, error) {
	args := m.Called(ctx, entry)
	var updated models.Education
	if val := args.Get(0); val != nil {
		updated = val.(models.Education)
	}
	return updated, args.Error(1)
}

func (m *EducationRepositoryMock) DeleteEducation(ctx context.Context, entryID, userID int) error {
	args := m.Called(ctx, entryID, userID)
	return args.Error(0)
}

type DocumentRepositoryMock struct {
	mock.Mock
}

func (m *DocumentRepositoryMock) CreateDocument(ctx context.Context, doc models.Document) (models.Document, error) {
	args := m.Called(ctx, doc)
	var created models.Document
	if val := args.Get(0); val != nil {
		created = val.(models.Document)
	}
	return created, args.Error(1)
}

func (m *DocumentRepositoryMock) ListDocuments(ctx context.Context, userID int) ([]models.Document, error) {
	args := m.Called(ctx, userID)
	var docs []models.Document
	if val := args.Get(0); val != nil {
		docs = val.([]models.Document)
	}
	return docs, args.Error(1)
}

func (m *DocumentRepositoryMock) DeleteDocument(ctx context.Context, documentID, userID int) error {
	args := m.Called(ctx, documentID, userID)
	return args.Error(0)
}

type AvailabilityRepositoryMock struct {
	mock.Mock
}

func (m *AvailabilityRepositoryMock) CreateWindow(ctx context.Context, w models.AvailabilityWindow) (models.AvailabilityWindow, error) {
	args := m.Called(ctx, w)
	var created models.AvailabilityWindow
	if val := args.Get(0); val != nil {
		created = val.(models.AvailabilityWindow)
	}
	return created, args.Error(1)
}

func (m *AvailabilityRepositoryMock) ListWindows(ctx context.Context, ownerID int) ([]models.AvailabilityWindow, error) {
	args := m.Called(ctx, ownerID)
	var windows []models.AvailabilityWindow
	if val := args.Get(0); val != nil {
		windows = val.([]models.AvailabilityWindow)
	}
	return windows, args.Error(1)
}

func (m *AvailabilityRepositoryMock) ResetWindowsForDate(ctx context.Context, ownerID int, date time.Time) error {
	args := m.Called(ctx, ownerID, date)
	return args.Error(0)
}

type EventTypeRepositoryMock struct {
	mock.Mock
}

func (m *EventTypeRepositoryMock) CreateEventType(ctx context.Context, ownerID int, title string, lengthMinutes int) (models.EventType, error) {
	args := m.Called(ctx, ownerID, title, lengthMinutes)
	var et models.EventType
	if val := args.Get(0); val != nil {
		et = val.(models.EventType)
	}
	return et, args.Error(1)
}

func (m *EventTypeRepositoryMock) GetEventType(ctx context.Context, eventTypeID int) (models.EventType, error) {
	args := m.Called(ctx, eventTypeID)
	var et models.EventType
	if val := args.Get(0); val != nil {
		et = val.(models.EventType)
	}
	return et, args.Error(1)
}

func (m *EventTypeRepositoryMock) ListEventTypes(ctx context.Context, ownerID int) ([]models.EventType, error) {
	args := m.Called(ctx, ownerID)
	var types []models.EventType
	if val := args.Get(0); val != nil {
		types = val.([]models.EventType)
	}
	return types, args.Error(1)
}

func (m *EventTypeRepositoryMock) DeleteEventType(ctx context.Context, eventTypeID, ownerID int) error {
	args := m.Called(ctx, eventTypeID, ownerID)
	return args.Error(0)
}

type EventRepositoryMock struct {
	mock.Mock
}

func (m *EventRepositoryMock) CreateBookedEvent(ctx context.Context, ev models.BookedEvent) (models.BookedEvent, error) {
	args := m.Called(ctx, ev)
	var created models.BookedEvent
	if val := args.Get(0); val != nil {
		created = val.(models.BookedEvent)
	}
	return created, args.Error(1)
}

func (m *EventRepositoryMock) GetBookedEvent(ctx context.Context, eventID int) (models.BookedEvent, error) {
	args := m.Called(ctx, eventID)
	var ev models.BookedEvent
	if val := args.Get(0); val != nil {
		ev = val.(models.BookedEvent)
	}
	return ev, args.Error(1)
}

func (m *EventRepositoryMock) ListBookedInRange(ctx context.Context, creatorID int, from, to time.Time) ([]models.BookedEvent, error) {
	args := m.Called(ctx, creatorID, from, to)
	var events []models.BookedEvent
	if val := args.Get(0); val != nil {
		events = val.([]models.BookedEvent)
	}
	return events, args.Error(1)
}

func (m *EventRepositoryMock) ListEventsForUser(ctx context.Context, userID int, email string) ([]models.BookedEvent, error) {
	args := m.Called(ctx, userID, email)
	var events []models.BookedEvent
	if val := args.Get(0); val != nil {
		events = val.([]models.BookedEvent)
	}
	return events, args.Error(1)
}

func (m *EventRepositoryMock) RescheduleBookedEvent(ctx context.Context, eventID int, start, end time.Time) (models.BookedEvent, error) {
	args := m.Called(ctx, eventID, start, end)
	var updated models.BookedEvent
	if val := args.Get(0); val != nil {
		updated = val.(models.BookedEvent)
	}
	return updated, args.Error(1)
}

func (m *EventRepositoryMock) DeleteBookedEvent(ctx context.Context, eventID int) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type ConnectionRepositoryMock struct {
	mock.Mock
}

func (m *ConnectionRepositoryMock) CreateRequest(ctx context.Context, requesterID, receiverID int) (models.Connection, error) {
	args := m.Called(ctx, requesterID, receiverID)
	var conn models.Connection
	if val := args.Get(0); val != nil {
		conn = val.(models.Connection)
	}
	return conn, args.Error(1)
}

func (m *ConnectionRepositoryMock) GetConnection(ctx context.Context, connectionID int) (models.Connection, error) {
	args := m.Called(ctx, connectionID)
	var conn models.Connection
	if val := args.Get(0); val != nil {
		conn = val.(models.Connection)
	}
	return conn, args.Error(1)
}

func (m *ConnectionRepositoryMock) UpdateStatus(ctx context.Context, connectionID int, status string) error {
	args := m.Called(ctx, connectionID, status)
	return args.Error(0)
}

func (m *ConnectionRepositoryMock) DeleteConnection(ctx context.Context, connectionID int) error {
	args := m.Called(ctx, connectionID)
	return args.Error(0)
}

func (m *ConnectionRepositoryMock) ListAccepted(ctx context.Context, userID int) ([]models.Connection, error) {
	args := m.Called(ctx, userID)
	var conns []models.Connection
	if val := args.Get(0); val != nil {
		conns = val.([]models.Connection)
	}
	return conns, args.Error(1)
}

func (m *ConnectionRepositoryMock) ListPending(ctx context.Context, receiverID int) ([]models.Connection, error) {
	args := m.Called(ctx, receiverID)
	var conns []models.Connection
	if val := args.Get(0); val != nil {
		conns = val.([]models.Connection)
	}
	return conns, args.Error(1)
}

func (m *ConnectionRepositoryMock) AreConnected(ctx context.Context, userA, userB int) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) GetOrCreateConversation(ctx context.Context, userID, otherID int) (models.Conversation, error) {
	args := m.Called(ctx, userID, otherID)
	var conv models.Conversation
	if val := args.Get(0); val != nil {
		conv = val.(models.Conversation)
	}
	return conv, args.Error(1)
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, conversationID, senderID, recipientID int, subject, content string) (models.Message, error) {
	args := m.Called(ctx, conversationID, senderID, recipientID, subject, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) GetMessage(ctx context.Context, messageID int) (models.Message, error) {
	args := m.Called(ctx, messageID)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListInbox(ctx context.Context, userID int) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) ListSent(ctx context.Context, userID int) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) ListTrash(ctx context.Context, userID int) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) MarkRead(ctx context.Context, messageID int) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

func (m *MessageRepositoryMock) SoftDeleteForUser(ctx context.Context, messageID int, isSender bool) error {
	args := m.Called(ctx, messageID, isSender)
	return args.Error(0)
}

func (m *MessageRepositoryMock) RestoreForUser(ctx context.Context, messageID int, isSender bool) error {
	args := m.Called(ctx, messageID, isSender)
	return args.Error(0)
}

func (m *MessageRepositoryMock) HardDeleteFromTrash(ctx context.Context, messageID int, isSender bool) error {
	args := m.Called(ctx, messageID, isSender)
	return args.Error(0)
}
