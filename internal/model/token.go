package model

import (
	"context"

	"github.com/google/uuid"
)

// TokenManager mints and validates signed bearer credentials.
// It never reads or writes the token ledger.
type TokenManager interface {
	GenerateToken(user User) (string, error)
	GenerateRefreshToken(user User) (string, error)
	ExtractUsername(token string) (string, error)
	ExtractRefreshUsername(token string) (string, error)
	IsTokenValid(token string, user User) bool
}

// TokenType is the scheme of a ledger token.
type TokenType string

const TokenTypeBearer TokenType = "BEARER"

// Token is one issued access token tracked in the ledger.
type Token struct {
	ID      uuid.UUID
	Token   string
	Type    TokenType
	Revoked bool
	Expired bool
	UserID  uuid.UUID
}

// Valid reports whether the token is neither revoked nor expired.
func (t Token) Valid() bool {
	return !t.Revoked && !t.Expired
}

// TokenStore is the token ledger.
type TokenStore interface {
	GetByToken(ctx context.Context, token string) (Token, error)
	// ListValidByUser returns the user's tokens that are neither revoked nor
	// expired. At most one exists after any Replace.
	ListValidByUser(ctx context.Context, userID uuid.UUID) ([]Token, error)
	// Replace revokes every valid token of the user and inserts the new one
	// as a single atomic unit.
	Replace(ctx context.Context, userID uuid.UUID, token Token) error
	// Revoke flags a single valid token as revoked and expired. It reports
	// whether a row was changed.
	Revoke(ctx context.Context, token string) (bool, error)
}

// TokenPair is returned by authenticate and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
