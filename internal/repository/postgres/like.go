package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/listenloud-server/internal/model"
)

var _ model.LikeStore = (*LikeRepository)(nil)

type LikeRepository struct {
	db *Connection
}

func NewLikeRepository(db *Connection) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Toggle(ctx context.Context, userID, trackID uuid.UUID) (bool, error) {
	var liked bool
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `DELETE FROM likes WHERE user_id = $1 AND track_id = $2`, userID, trackID)
		if err != nil {
			return fmt.Errorf("failed to remove like: %w", err)
		}
		if cmd.RowsAffected() > 0 {
			liked = false
			return nil
		}

		const insert = `INSERT INTO likes (user_id, track_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(ctx, insert, userID, trackID); err != nil {
			return fmt.Errorf("failed to add like: %w", err)
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (r *LikeRepository) IsLiked(ctx context.Context, userID, trackID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND track_id = $2)`

	var liked bool
	if err := r.db.QueryRow(ctx, query, userID, trackID).Scan(&liked); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return liked, nil
}

func (r *LikeRepository) Count(ctx context.Context, trackID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE track_id = $1`, trackID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
