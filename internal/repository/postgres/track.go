package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/listenloud-server/internal/model"
)

var _ model.TrackStore = (*TrackRepository)(nil)

const trackColumns = `t.id, t.name, t.description, t.image_key, t.audio_key, t.author_id, t.created_at`

type TrackRepository struct {
	db *Connection
}

func NewTrackRepository(db *Connection) *TrackRepository {
	return &TrackRepository{db: db}
}

func scanTrack(row pgx.Row) (model.Track, error) {
	var t model.Track
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.ImageKey, &t.AudioKey, &t.AuthorID, &t.CreatedAt)
	return t, err
}

func collectTracks(rows pgx.Rows) ([]model.Track, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Track, error) {
		return scanTrack(row)
	})
}

func (r *TrackRepository) listTracks(ctx context.Context, query string, args ...any) ([]model.Track, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}

	tracks, err := collectTracks(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan tracks: %w", err)
	}
	return tracks, nil
}

func (r *TrackRepository) Create(ctx context.Context, track model.Track) (model.Track, error) {
	query := `INSERT INTO tracks AS t (id, name, description, image_key, audio_key, author_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + trackColumns

	saved, err := scanTrack(r.db.QueryRow(ctx, query,
		track.ID, track.Name, track.Description, track.ImageKey, track.AudioKey, track.AuthorID, track.CreatedAt,
	))
	if err != nil {
		return model.Track{}, fmt.Errorf("failed to create track: %w", err)
	}
	return saved, nil
}

func (r *TrackRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks t WHERE t.id = $1`

	track, err := scanTrack(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Track{}, model.ErrNotFound
		}
		return model.Track{}, fmt.Errorf("failed to get track by id: %w", err)
	}
	return track, nil
}

func (r *TrackRepository) List(ctx context.Context) ([]model.Track, error) {
	return r.listTracks(ctx, `SELECT `+trackColumns+` FROM tracks t ORDER BY t.created_at DESC`)
}

func (r *TrackRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Track, error) {
	return r.listTracks(ctx,
		`SELECT `+trackColumns+` FROM tracks t WHERE t.author_id = $1 ORDER BY t.created_at DESC`, authorID)
}

func (r *TrackRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]model.Track, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	return r.listTracks(ctx,
		`SELECT `+trackColumns+` FROM tracks t WHERE t.author_id = ANY($1) ORDER BY t.created_at DESC`, authorIDs)
}

func (r *TrackRepository) ListByTags(ctx context.Context, tagIDs []int64) ([]model.Track, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + trackColumns + `
			  FROM tracks t
			  JOIN track_tags tt ON tt.track_id = t.id
			  WHERE tt.tag_id = ANY($1)
			  GROUP BY t.id
			  ORDER BY COUNT(*) DESC, t.created_at DESC`
	return r.listTracks(ctx, query, tagIDs)
}

func (r *TrackRepository) ListMostLiked(ctx context.Context) ([]model.Track, error) {
	query := `SELECT ` + trackColumns + `
			  FROM tracks t
			  JOIN likes l ON l.track_id = t.id
			  GROUP BY t.id
			  ORDER BY COUNT(*) DESC, t.created_at DESC`
	return r.listTracks(ctx, query)
}

func (r *TrackRepository) Update(ctx context.Context, track model.Track) (model.Track, error) {
	query := `UPDATE tracks AS t SET name = $2, description = $3, image_key = $4, audio_key = $5
			  WHERE t.id = $1
			  RETURNING ` + trackColumns

	saved, err := scanTrack(r.db.QueryRow(ctx, query,
		track.ID, track.Name, track.Description, track.ImageKey, track.AudioKey,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Track{}, model.ErrNotFound
		}
		return model.Track{}, fmt.Errorf("failed to update track: %w", err)
	}
	return saved, nil
}

func (r *TrackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM tracks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
