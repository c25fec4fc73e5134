package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// Tag exposes the genre tags and their links to tracks and users.
type Tag struct {
	tags   model.TagStore
	tracks model.TrackStore
	logger *logger.Logger
}

func NewTag(tags model.TagStore, tracks model.TrackStore, logger *logger.Logger) *Tag {
	return &Tag{tags: tags, tracks: tracks, logger: logger}
}

func (s *Tag) List(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// ForTrack returns the tags of an existing track.
func (s *Tag) ForTrack(ctx context.Context, trackID uuid.UUID) ([]model.Tag, error) {
	if _, err := s.tracks.GetByID(ctx, trackID); err != nil {
		return nil, err
	}
	tags, err := s.tags.ListByTrack(ctx, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to list track tags: %w", err)
	}
	return tags, nil
}

// ClearTrack removes every tag from a track owned by actor.
func (s *Tag) ClearTrack(ctx context.Context, actor model.User, trackID uuid.UUID) error {
	track, err := s.tracks.GetByID(ctx, trackID)
	if err != nil {
		return err
	}
	if !canModify(actor, track) {
		return model.ErrForbidden
	}
	if err := s.tags.SetTrackTags(ctx, trackID, nil); err != nil {
		return fmt.Errorf("failed to clear track tags: %w", err)
	}

	s.logger.Info("Tag service: track tags cleared",
		"user_id", actor.ID.String(),
		"track_id", trackID.String())
	return nil
}

func (s *Tag) ForUser(ctx context.Context, actor model.User) ([]model.Tag, error) {
	tags, err := s.tags.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user tags: %w", err)
	}
	return tags, nil
}

// SetForUser replaces actor's preferred tags with the named ones.
func (s *Tag) SetForUser(ctx context.Context, actor model.User, names []string) ([]model.Tag, error) {
	tags, err := resolveTags(ctx, s.tags, names)
	if err != nil {
		return nil, err
	}
	if err := s.tags.SetUserTags(ctx, actor.ID, model.TagIDs(tags)); err != nil {
		return nil, fmt.Errorf("failed to set user tags: %w", err)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, nil
}
