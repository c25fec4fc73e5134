package model

import (
	"context"

	"github.com/google/uuid"
)

// TagStore defines persistence operations for genre tags and their links.
type TagStore interface {
	List(ctx context.Context) ([]Tag, error)
	GetByNames(ctx context.Context, names []string) ([]Tag, error)
	ListByTrack(ctx context.Context, trackID uuid.UUID) ([]Tag, error)
	SetTrackTags(ctx context.Context, trackID uuid.UUID, tagIDs []int64) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Tag, error)
	SetUserTags(ctx context.Context, userID uuid.UUID, tagIDs []int64) error
}

// Tag is a genre label.
type Tag struct {
	ID   int64
	Name string
}

// TagIDs returns the identifiers of tags.
func TagIDs(tags []Tag) []int64 {
	ids := make([]int64, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}
