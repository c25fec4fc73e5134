package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/listenloud-server/internal/model"
)

var _ model.TokenStore = (*TokenRepository)(nil)

const tokenColumns = `id, token, token_type, revoked, expired, user_id`

// TokenRepository is the ledger of issued access tokens.
type TokenRepository struct {
	db *Connection
}

func NewTokenRepository(db *Connection) *TokenRepository {
	return &TokenRepository{db: db}
}

func scanToken(row pgx.Row) (model.Token, error) {
	var t model.Token
	err := row.Scan(&t.ID, &t.Token, &t.Type, &t.Revoked, &t.Expired, &t.UserID)
	return t, err
}

func (r *TokenRepository) GetByToken(ctx context.Context, token string) (model.Token, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens WHERE token = $1`

	t, err := scanToken(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Token{}, model.ErrNotFound
		}
		return model.Token{}, fmt.Errorf("failed to get token: %w", err)
	}
	return t, nil
}

func (r *TokenRepository) ListValidByUser(ctx context.Context, userID uuid.UUID) ([]model.Token, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens
			  WHERE user_id = $1 AND NOT revoked AND NOT expired`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list valid tokens: %w", err)
	}

	tokens, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Token, error) {
		return scanToken(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tokens: %w", err)
	}
	return tokens, nil
}

// Replace locks the user row, so concurrent logins of one user are applied
// one after another and at most one valid token remains.
func (r *TokenRepository) Replace(ctx context.Context, userID uuid.UUID, token model.Token) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	if token.Type == "" {
		token.Type = model.TokenTypeBearer
	}

	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var id uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrUserNotFound
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}

		const revoke = `UPDATE tokens SET revoked = TRUE, expired = TRUE
						WHERE user_id = $1 AND NOT revoked AND NOT expired`
		if _, err := tx.Exec(ctx, revoke, userID); err != nil {
			return fmt.Errorf("failed to revoke user tokens: %w", err)
		}

		const insert = `INSERT INTO tokens (id, token, token_type, revoked, expired, user_id)
						VALUES ($1, $2, $3, FALSE, FALSE, $4)`
		if _, err := tx.Exec(ctx, insert, token.ID, token.Token, string(token.Type), userID); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		return nil
	})
}

func (r *TokenRepository) Revoke(ctx context.Context, token string) (bool, error) {
	const query = `UPDATE tokens SET revoked = TRUE, expired = TRUE WHERE token = $1 AND NOT revoked`

	cmd, err := r.db.Exec(ctx, query, token)
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
