package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageStore defines persistence operations for direct messages.
type MessageStore interface {
	Create(ctx context.Context, message Message) (Message, error)
	GetByID(ctx context.Context, id uuid.UUID) (Message, error)
	// ListConversation returns messages exchanged by two users, oldest first.
	ListConversation(ctx context.Context, userID, partnerID uuid.UUID) ([]Message, error)
	// MarkRead flags messages sent by partnerID to userID as read.
	MarkRead(ctx context.Context, userID, partnerID uuid.UUID) error
	// ListLatest returns the newest message of every conversation the user takes part in.
	ListLatest(ctx context.Context, userID uuid.UUID) ([]Message, error)
	DeleteConversation(ctx context.Context, userID, partnerID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateContent(ctx context.Context, id uuid.UUID, content string, editedAt time.Time) (Message, error)
}

// Message is a direct message between two users.
type Message struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Content     string
	SentAt      time.Time
	IsRead      bool
}

// MessageView is a message with both participants resolved.
type MessageView struct {
	Message
	Sender    UserView
	Recipient UserView
}
