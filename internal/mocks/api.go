package mocks

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/listenloud-server/internal/model"
)

// Authenticator is a mock of middleware.Authenticator.
type Authenticator struct {
	mock.Mock
}

func NewAuthenticator(t testingT) *Authenticator {
	m := &Authenticator{}
	register(&m.Mock, t)
	return m
}

func (m *Authenticator) ExtractUsername(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *Authenticator) ResolveUser(ctx context.Context, username, token string) (model.User, bool, error) {
	args := m.Called(ctx, username, token)
	return ret[model.User](args, 0), args.Bool(1), args.Error(2)
}

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func NewSecurityLayer(t testingT) *SecurityLayer {
	m := &SecurityLayer{}
	register(&m.Mock, t)
	return m
}

func (m *SecurityLayer) Listen(network, address string) (net.Listener, error) {
	args := m.Called(network, address)
	return ret[net.Listener](args, 0), args.Error(1)
}
