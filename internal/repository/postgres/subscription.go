package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/model"
)

var _ model.SubscriptionStore = (*SubscriptionRepository)(nil)

type SubscriptionRepository struct {
	db *Connection
}

func NewSubscriptionRepository(db *Connection) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Subscribe(ctx context.Context, subscriberID, publisherID uuid.UUID) error {
	const query = `INSERT INTO subscriptions (subscriber_id, publisher_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.Exec(ctx, query, subscriberID, publisherID); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) Unsubscribe(ctx context.Context, subscriberID, publisherID uuid.UUID) error {
	const query = `DELETE FROM subscriptions WHERE subscriber_id = $1 AND publisher_id = $2`
	cmd, err := r.db.Exec(ctx, query, subscriberID, publisherID)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SubscriptionRepository) UnsubscribeMany(ctx context.Context, subscriberID uuid.UUID, publisherIDs []uuid.UUID) error {
	if len(publisherIDs) == 0 {
		return nil
	}
	const query = `DELETE FROM subscriptions WHERE subscriber_id = $1 AND publisher_id = ANY($2)`
	if _, err := r.db.Exec(ctx, query, subscriberID, publisherIDs); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) ListPublishers(ctx context.Context, subscriberID uuid.UUID) ([]model.User, error) {
	query := `SELECT u.id, u.username, u.password_hash, u.role, u.biography, u.image_key, u.created_at, u.updated_at
			  FROM users u
			  JOIN subscriptions s ON s.publisher_id = u.id
			  WHERE s.subscriber_id = $1
			  ORDER BY s.created_at DESC`
	return r.listUsers(ctx, query, subscriberID)
}

func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, publisherID uuid.UUID) ([]model.User, error) {
	query := `SELECT u.id, u.username, u.password_hash, u.role, u.biography, u.image_key, u.created_at, u.updated_at
			  FROM users u
			  JOIN subscriptions s ON s.subscriber_id = u.id
			  WHERE s.publisher_id = $1
			  ORDER BY s.created_at DESC`
	return r.listUsers(ctx, query, publisherID)
}

func (r *SubscriptionRepository) listUsers(ctx context.Context, query string, id uuid.UUID) ([]model.User, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	users, err := collectUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscriptions: %w", err)
	}
	return users, nil
}
