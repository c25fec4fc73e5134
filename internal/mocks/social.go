package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/listenloud-server/internal/model"
)

// SubscriptionStore is a mock of model.SubscriptionStore.
type SubscriptionStore struct {
	mock.Mock
}

func NewSubscriptionStore(t testingT) *SubscriptionStore {
	m := &SubscriptionStore{}
	register(&m.Mock, t)
	return m
}

func (m *SubscriptionStore) Subscribe(ctx context.Context, subscriberID, publisherID uuid.UUID) error {
	return m.Called(ctx, subscriberID, publisherID).Error(0)
}

func (m *SubscriptionStore) Unsubscribe(ctx context.Context, subscriberID, publisherID uuid.UUID) error {
	return m.Called(ctx, subscriberID, publisherID).Error(0)
}

func (m *SubscriptionStore) UnsubscribeMany(ctx context.Context, subscriberID uuid.UUID, publisherIDs []uuid.UUID) error {
	return m.Called(ctx, subscriberID, publisherIDs).Error(0)
}

func (m *SubscriptionStore) ListPublishers(ctx context.Context, subscriberID uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, subscriberID)
	return ret[[]model.User](args, 0), args.Error(1)
}

func (m *SubscriptionStore) ListSubscribers(ctx context.Context, publisherID uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, publisherID)
	return ret[[]model.User](args, 0), args.Error(1)
}

// MessageStore is a mock of model.MessageStore.
type MessageStore struct {
	mock.Mock
}

func NewMessageStore(t testingT) *MessageStore {
	m := &MessageStore{}
	register(&m.Mock, t)
	return m
}

func (m *MessageStore) Create(ctx context.Context, message model.Message) (model.Message, error) {
	args := m.Called(ctx, message)
	return ret[model.Message](args, 0), args.Error(1)
}

func (m *MessageStore) GetByID(ctx context.Context, id uuid.UUID) (model.Message, error) {
	args := m.Called(ctx, id)
	return ret[model.Message](args, 0), args.Error(1)
}

func (m *MessageStore) ListConversation(ctx context.Context, userID, partnerID uuid.UUID) ([]model.Message, error) {
	args := m.Called(ctx, userID, partnerID)
	return ret[[]model.Message](args, 0), args.Error(1)
}

func (m *MessageStore) MarkRead(ctx context.Context, userID, partnerID uuid.UUID) error {
	return m.Called(ctx, userID, partnerID).Error(0)
}

func (m *MessageStore) ListLatest(ctx context.Context, userID uuid.UUID) ([]model.Message, error) {
	args := m.Called(ctx, userID)
	return ret[[]model.Message](args, 0), args.Error(1)
}

func (m *MessageStore) DeleteConversation(ctx context.Context, userID, partnerID uuid.UUID) error {
	return m.Called(ctx, userID, partnerID).Error(0)
}

func (m *MessageStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MessageStore) UpdateContent(ctx context.Context, id uuid.UUID, content string, editedAt time.Time) (model.Message, error) {
	args := m.Called(ctx, id, content, editedAt)
	return ret[model.Message](args, 0), args.Error(1)
}
