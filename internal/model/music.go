package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TrackStore defines persistence operations for uploaded tracks.
type TrackStore interface {
	Create(ctx context.Context, track Track) (Track, error)
	GetByID(ctx context.Context, id uuid.UUID) (Track, error)
	List(ctx context.Context) ([]Track, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Track, error)
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]Track, error)
	// ListByTags orders tracks by the number of matching tags, best first.
	ListByTags(ctx context.Context, tagIDs []int64) ([]Track, error)
	// ListMostLiked returns liked tracks ordered by like count, best first.
	ListMostLiked(ctx context.Context) ([]Track, error)
	Update(ctx context.Context, track Track) (Track, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LikeStore keeps user likes of tracks.
type LikeStore interface {
	// Toggle likes the track or removes an existing like, reporting the new state.
	Toggle(ctx context.Context, userID, trackID uuid.UUID) (bool, error)
	IsLiked(ctx context.Context, userID, trackID uuid.UUID) (bool, error)
	Count(ctx context.Context, trackID uuid.UUID) (int64, error)
}

// SaveStore keeps tracks saved by users.
type SaveStore interface {
	Save(ctx context.Context, userID, trackID uuid.UUID) error
	Remove(ctx context.Context, userID, trackID uuid.UUID) error
	RemoveAll(ctx context.Context, userID uuid.UUID) error
	ListTracks(ctx context.Context, userID uuid.UUID) ([]Track, error)
}

// Track is an uploaded piece of music.
type Track struct {
	ID          uuid.UUID
	Name        string
	Description string
	ImageKey    string
	AudioKey    string
	AuthorID    uuid.UUID
	CreatedAt   time.Time
}

// CreateTrackParams contains parameters to upload a track.
type CreateTrackParams struct {
	Name        string
	Description string
	Image       *File
	Audio       *File
	Tags        []string
}

// UpdateTrackParams contains optional fields to change on a track.
// Nil fields are left untouched.
type UpdateTrackParams struct {
	Name        *string
	Description *string
	Image       *File
	Audio       *File
	Tags        []string
}

// TrackView is a track as presented to a particular user.
type TrackView struct {
	Track
	ImageURL   string
	AudioURL   string
	Author     UserView
	Tags       []Tag
	LikesCount int64
	IsLiked    bool
}
