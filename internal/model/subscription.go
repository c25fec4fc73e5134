package model

import (
	"context"

	"github.com/google/uuid"
)

// SubscriptionStore keeps subscriber→publisher links between users.
type SubscriptionStore interface {
	Subscribe(ctx context.Context, subscriberID, publisherID uuid.UUID) error
	Unsubscribe(ctx context.Context, subscriberID, publisherID uuid.UUID) error
	UnsubscribeMany(ctx context.Context, subscriberID uuid.UUID, publisherIDs []uuid.UUID) error
	ListPublishers(ctx context.Context, subscriberID uuid.UUID) ([]User, error)
	ListSubscribers(ctx context.Context, publisherID uuid.UUID) ([]User, error)
}

// UserView is a public profile.
type UserView struct {
	ID        uuid.UUID
	Username  string
	Biography string
	ImageURL  string
	Role      Role
	Tags      []Tag
}

// UpdateUserParams contains optional profile fields to change.
type UpdateUserParams struct {
	Username  *string
	Biography *string
	Image     *File
}
