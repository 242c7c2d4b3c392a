package repositories

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/jmoiron/sqlx"

	"career-service/internal/models"
)

var (
	ErrMessageNotFound   = errors.New("message not found")
	ErrMessageNotInTrash = errors.New("message is not in trash")
)

// MessageRepository abstracts conversation and message persistence.
type MessageRepository interface {
	GetOrCreateConversation(ctx context.Context, userID, otherID int) (models.Conversation, error)
	CreateMessage(ctx context.Context, conversationID, senderID, recipientID int, subject, content string) (models.Message, error)
	GetMessage(ctx context.Context, messageID int) (models.Message, error)
	ListInbox(ctx context.Context, userID int) ([]models.Message, error)
	ListSent(ctx context.Context, userID int) ([]models.Message, error)
	ListTrash(ctx context.Context, userID int) ([]models.Message, error)
	MarkRead(ctx context.Context, messageID int) error
	SoftDeleteForUser(ctx context.Context, messageID int, isSender bool) error
	RestoreForUser(ctx context.Context, messageID int, isSender bool) error
	HardDeleteFromTrash(ctx context.Context, messageID int, isSender bool) error
}

// MessageRepo is a sqlx implementation of MessageRepository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs a MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// GetOrCreateConversation returns the conversation for a pair of users,
// creating it if absent. The pair is stored normalized (lower id first).
func (r *MessageRepo) GetOrCreateConversation(ctx context.Context, userID, otherID int) (models.Conversation, error) {
	participants := []int{userID, otherID}
	sort.Ints(participants)
	user1, user2 := participants[0], participants[1]

	var conv models.Conversation
	err := r.db.GetContext(ctx, &conv,
		`SELECT id, user1_id, user2_id, created_at FROM conversations WHERE user1_id=$1 AND user2_id=$2`, user1, user2)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, err
	}

	err = r.db.QueryRowxContext(ctx,
		`INSERT INTO conversations (user1_id, user2_id) VALUES ($1, $2)
         ON CONFLICT (user1_id, user2_id) DO UPDATE SET user1_id = EXCLUDED.user1_id
         RETURNING id, user1_id, user2_id, created_at`, user1, user2).StructScan(&conv)
	return conv, err
}

// CreateMessage stores a message addressed to a single recipient.
func (r *MessageRepo) CreateMessage(ctx context.Context, conversationID, senderID, recipientID int, subject, content string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO messages (conversation_id, sender_id, recipient_id, subject, content)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id, conversation_id, sender_id, recipient_id, subject, content,
                   is_read_by_recipient, deleted_by_sender, deleted_by_recipient, created_at`,
		conversationID, senderID, recipientID, subject, content).StructScan(&msg)
	return msg, err
}

// GetMessage retrieves a single message.
func (r *MessageRepo) GetMessage(ctx context.Context, messageID int) (models.Message, error) {
	var msg models.Message
	err := r.db.GetContext(ctx, &msg,
		`SELECT id, conversation_id, sender_id, recipient_id, subject, content,
                is_read_by_recipient, deleted_by_sender, deleted_by_recipient, created_at
         FROM messages WHERE id=$1`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	return msg, err
}

// ListInbox returns received messages the user has not trashed.
func (r *MessageRepo) ListInbox(ctx context.Context, userID int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT id, conversation_id, sender_id, recipient_id, subject, content,
                is_read_by_recipient, deleted_by_sender, deleted_by_recipient, created_at
         FROM messages WHERE recipient_id=$1 AND deleted_by_recipient = FALSE
         ORDER BY created_at DESC`, userID)
	return msgs, err
}

// ListSent returns sent messages the user has not trashed.
func (r *MessageRepo) ListSent(ctx context.Context, userID int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT id, conversation_id, sender_id, recipient_id, subject, content,
                is_read_by_recipient, deleted_by_sender, deleted_by_recipient, created_at
         FROM messages WHERE sender_id=$1 AND deleted_by_sender = FALSE
         ORDER BY created_at DESC`, userID)
	return msgs, err
}

// ListTrash returns messages the user has soft-deleted on their side.
func (r *MessageRepo) ListTrash(ctx context.Context, userID int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT id, conversation_id, sender_id, recipient_id, subject, content,
                is_read_by_recipient, deleted_by_sender, deleted_by_recipient, created_at
         FROM messages
         WHERE (sender_id=$1 AND deleted_by_sender = TRUE)
            OR (recipient_id=$1 AND deleted_by_recipient = TRUE)
         ORDER BY created_at DESC`, userID)
	return msgs, err
}

// MarkRead flags a message as read by its recipient.
func (r *MessageRepo) MarkRead(ctx context.Context, messageID int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET is_read_by_recipient = TRUE WHERE id=$1`, messageID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// SoftDeleteForUser moves a message to the caller's trash.
func (r *MessageRepo) SoftDeleteForUser(ctx context.Context, messageID int, isSender bool) error {
	if isSender {
		_, err := r.db.ExecContext(ctx, `UPDATE messages SET deleted_by_sender = TRUE WHERE id=$1`, messageID)
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE messages SET deleted_by_recipient = TRUE WHERE id=$1`, messageID)
	return err
}

// RestoreForUser clears the caller's soft-delete flag.
func (r *MessageRepo) RestoreForUser(ctx context.Context, messageID int, isSender bool) error {
	if isSender {
		_, err := r.db.ExecContext(ctx, `UPDATE messages SET deleted_by_sender = FALSE WHERE id=$1`, messageID)
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE messages SET deleted_by_recipient = FALSE WHERE id=$1`, messageID)
	return err
}

// HardDeleteFromTrash removes a message permanently, but only when the
// caller has already soft-deleted it.
func (r *MessageRepo) HardDeleteFromTrash(ctx context.Context, messageID int, isSender bool) error {
	var res sql.Result
	var err error
	if isSender {
		res, err = r.db.ExecContext(ctx, `DELETE FROM messages WHERE id=$1 AND deleted_by_sender = TRUE`, messageID)
	} else {
		res, err = r.db.ExecContext(ctx, `DELETE FROM messages WHERE id=$1 AND deleted_by_recipient = TRUE`, messageID)
	}
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrMessageNotInTrash
	}
	return nil
}
