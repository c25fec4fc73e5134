package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/listenloud-server/internal/model"
)

var _ model.TagStore = (*TagRepository)(nil)

type TagRepository struct {
	db *Connection
}

func NewTagRepository(db *Connection) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) listTags(ctx context.Context, query string, args ...any) ([]model.Tag, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Tag, error) {
		var t model.Tag
		err := row.Scan(&t.ID, &t.Name)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tags: %w", err)
	}
	return tags, nil
}

func (r *TagRepository) List(ctx context.Context) ([]model.Tag, error) {
	return r.listTags(ctx, `SELECT id, name FROM tags ORDER BY id`)
}

func (r *TagRepository) GetByNames(ctx context.Context, names []string) ([]model.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return r.listTags(ctx, `SELECT id, name FROM tags WHERE name = ANY($1) ORDER BY id`, names)
}

func (r *TagRepository) ListByTrack(ctx context.Context, trackID uuid.UUID) ([]model.Tag, error) {
	return r.listTags(ctx, `SELECT g.id, g.name FROM tags g
							JOIN track_tags tt ON tt.tag_id = g.id
							WHERE tt.track_id = $1 ORDER BY g.id`, trackID)
}

func (r *TagRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Tag, error) {
	return r.listTags(ctx, `SELECT g.id, g.name FROM tags g
							JOIN user_tags ut ON ut.tag_id = g.id
							WHERE ut.user_id = $1 ORDER BY g.id`, userID)
}

func (r *TagRepository) SetTrackTags(ctx context.Context, trackID uuid.UUID, tagIDs []int64) error {
	return r.replaceLinks(ctx, "track_tags", "track_id", trackID, tagIDs)
}

func (r *TagRepository) SetUserTags(ctx context.Context, userID uuid.UUID, tagIDs []int64) error {
	return r.replaceLinks(ctx, "user_tags", "user_id", userID, tagIDs)
}

// replaceLinks swaps the full tag set of an owner. Table and column names are
// constants supplied by this file.
func (r *TagRepository) replaceLinks(ctx context.Context, table, ownerColumn string, ownerID uuid.UUID, tagIDs []int64) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE `+ownerColumn+` = $1`, ownerID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		if len(tagIDs) == 0 {
			return nil
		}
		insert := `INSERT INTO ` + table + ` (` + ownerColumn + `, tag_id)
				   SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(ctx, insert, ownerID, tagIDs); err != nil {
			return fmt.Errorf("failed to fill %s: %w", table, err)
		}
		return nil
	})
}
