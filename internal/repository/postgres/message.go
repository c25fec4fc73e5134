package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/listenloud-server/internal/model"
)

var _ model.MessageStore = (*MessageRepository)(nil)

const messageColumns = `id, sender_id, recipient_id, content, sent_at, is_read`

type MessageRepository struct {
	db *Connection
}

func NewMessageRepository(db *Connection) *MessageRepository {
	return &MessageRepository{db: db}
}

func scanMessage(row pgx.Row) (model.Message, error) {
	var m model.Message
	err := row.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.SentAt, &m.IsRead)
	return m, err
}

func (r *MessageRepository) listMessages(ctx context.Context, query string, args ...any) ([]model.Message, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}

	messages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Message, error) {
		return scanMessage(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan messages: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) Create(ctx context.Context, message model.Message) (model.Message, error) {
	query := `INSERT INTO messages (id, sender_id, recipient_id, content, sent_at, is_read)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + messageColumns

	saved, err := scanMessage(r.db.QueryRow(ctx, query,
		message.ID, message.SenderID, message.RecipientID, message.Content, message.SentAt, message.IsRead,
	))
	if err != nil {
		return model.Message{}, fmt.Errorf("failed to create message: %w", err)
	}
	return saved, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	m, err := scanMessage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Message{}, model.ErrNotFound
		}
		return model.Message{}, fmt.Errorf("failed to get message: %w", err)
	}
	return m, nil
}

func (r *MessageRepository) ListConversation(ctx context.Context, userID, partnerID uuid.UUID) ([]model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
			  WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
			  ORDER BY sent_at`
	return r.listMessages(ctx, query, userID, partnerID)
}

func (r *MessageRepository) MarkRead(ctx context.Context, userID, partnerID uuid.UUID) error {
	const query = `UPDATE messages SET is_read = TRUE
				   WHERE recipient_id = $1 AND sender_id = $2 AND NOT is_read`
	if _, err := r.db.Exec(ctx, query, userID, partnerID); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

func (r *MessageRepository) ListLatest(ctx context.Context, userID uuid.UUID) ([]model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM (
				SELECT DISTINCT ON (LEAST(sender_id, recipient_id), GREATEST(sender_id, recipient_id)) ` + messageColumns + `
				FROM messages
				WHERE sender_id = $1 OR recipient_id = $1
				ORDER BY LEAST(sender_id, recipient_id), GREATEST(sender_id, recipient_id), sent_at DESC
			  ) latest
			  ORDER BY sent_at DESC`
	return r.listMessages(ctx, query, userID)
}

func (r *MessageRepository) DeleteConversation(ctx context.Context, userID, partnerID uuid.UUID) error {
	const query = `DELETE FROM messages
				   WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)`
	if _, err := r.db.Exec(ctx, query, userID, partnerID); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

func (r *MessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *MessageRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string, editedAt time.Time) (model.Message, error) {
	query := `UPDATE messages SET content = $2, sent_at = $3 WHERE id = $1 RETURNING ` + messageColumns

	m, err := scanMessage(r.db.QueryRow(ctx, query, id, content, editedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Message{}, model.ErrNotFound
		}
		return model.Message{}, fmt.Errorf("failed to update message: %w", err)
	}
	return m, nil
}
