package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/listenloud-server/internal/model"
)

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(&m.Mock, t)
	return m
}

func (m *TokenManager) GenerateToken(user model.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) GenerateRefreshToken(user model.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ExtractUsername(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ExtractRefreshUsername(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) IsTokenValid(token string, user model.User) bool {
	args := m.Called(token, user)
	return args.Bool(0)
}

// TokenStore is a mock of model.TokenStore.
type TokenStore struct {
	mock.Mock
}

func NewTokenStore(t testingT) *TokenStore {
	m := &TokenStore{}
	register(&m.Mock, t)
	return m
}

func (m *TokenStore) GetByToken(ctx context.Context, token string) (model.Token, error) {
	args := m.Called(ctx, token)
	return ret[model.Token](args, 0), args.Error(1)
}

func (m *TokenStore) ListValidByUser(ctx context.Context, userID uuid.UUID) ([]model.Token, error) {
	args := m.Called(ctx, userID)
	return ret[[]model.Token](args, 0), args.Error(1)
}

func (m *TokenStore) Replace(ctx context.Context, userID uuid.UUID, token model.Token) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *TokenStore) Revoke(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}
