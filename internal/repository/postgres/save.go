package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/model"
)

var _ model.SaveStore = (*SaveRepository)(nil)

type SaveRepository struct {
	db *Connection
}

func NewSaveRepository(db *Connection) *SaveRepository {
	return &SaveRepository{db: db}
}

func (r *SaveRepository) Save(ctx context.Context, userID, trackID uuid.UUID) error {
	const query = `INSERT INTO saves (user_id, track_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.Exec(ctx, query, userID, trackID); err != nil {
		return fmt.Errorf("failed to save track: %w", err)
	}
	return nil
}

func (r *SaveRepository) Remove(ctx context.Context, userID, trackID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM saves WHERE user_id = $1 AND track_id = $2`, userID, trackID)
	if err != nil {
		return fmt.Errorf("failed to remove saved track: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SaveRepository) RemoveAll(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM saves WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to remove saved tracks: %w", err)
	}
	return nil
}

func (r *SaveRepository) ListTracks(ctx context.Context, userID uuid.UUID) ([]model.Track, error) {
	query := `SELECT ` + trackColumns + `
			  FROM tracks t
			  JOIN saves s ON s.track_id = t.id
			  WHERE s.user_id = $1
			  ORDER BY s.saved_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved tracks: %w", err)
	}

	tracks, err := collectTracks(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan saved tracks: %w", err)
	}
	return tracks, nil
}
