package models

import "time"

// Conversation groups messages between exactly two users.
type Conversation struct {
	ID        int       `db:"id" json:"id"`
	User1ID   int       `db:"user1_id" json:"user1_id"`
	User2ID   int       `db:"user2_id" json:"user2_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Message carries per-actor soft-delete flags and read status. A message
// is only ever hard-deleted from an already soft-deleted state.
type Message struct {
	ID                 int       `db:"id" json:"id"`
	ConversationID     int       `db:"conversation_id" json:"conversation_id"`
	SenderID           int       `db:"sender_id" json:"sender_id"`
	RecipientID        int       `db:"recipient_id" json:"recipient_id"`
	Subject            string    `db:"subject" json:"subject"`
	Content            string    `db:"content" json:"content"`
	IsReadByRecipient  bool      `db:"is_read_by_recipient" json:"is_read_by_recipient"`
	DeletedBySender    bool      `db:"deleted_by_sender" json:"deleted_by_sender"`
	DeletedByRecipient bool      `db:"deleted_by_recipient" json:"deleted_by_recipient"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// Notification is pushed through websockets.
type Notification struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}
