package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event.
type EventType string

const (
	EventUserRegistered    EventType = "user.registered"
	EventUserAuthenticated EventType = "user.authenticated"
	EventUserLoggedOut     EventType = "user.logged_out"
	EventTrackUploaded     EventType = "track.uploaded"
	EventTrackDeleted      EventType = "track.deleted"
	EventMessageSent       EventType = "message.sent"
)

// Event is a domain event published after a successful state change.
type Event struct {
	Type       EventType         `json:"type"`
	UserID     uuid.UUID         `json:"user_id"`
	SubjectID  uuid.UUID         `json:"subject_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// EventPublisher delivers domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
