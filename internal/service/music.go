package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// Music manages tracks together with their likes, saves and tags.
type Music struct {
	tracks        model.TrackStore
	likes         model.LikeStore
	saves         model.SaveStore
	tags          model.TagStore
	users         model.UserStore
	subscriptions model.SubscriptionStore
	media         *Media
	events        eventSink
	logger        *logger.Logger
	now           func() time.Time
}

func NewMusic(
	tracks model.TrackStore,
	likes model.LikeStore,
	saves model.SaveStore,
	tags model.TagStore,
	users model.UserStore,
	subscriptions model.SubscriptionStore,
	media *Media,
	publisher model.EventPublisher,
	logger *logger.Logger,
) *Music {
	return &Music{
		tracks:        tracks,
		likes:         likes,
		saves:         saves,
		tags:          tags,
		users:         users,
		subscriptions: subscriptions,
		media:         media,
		events:        eventSink{publisher: publisher, logger: logger},
		logger:        logger,
		now:           time.Now,
	}
}

// canModify reports whether actor may edit or delete track.
func canModify(actor model.User, track model.Track) bool {
	return track.AuthorID == actor.ID || actor.IsAdmin()
}

// Create uploads a track by actor. Tracks without a cover use the default image.
func (s *Music) Create(ctx context.Context, actor model.User, params model.CreateTrackParams) (model.TrackView, error) {
	s.logger.Debug("Music service: creating track",
		"user_id", actor.ID.String(),
		"name", params.Name)

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return model.TrackView{}, fmt.Errorf("%w: name is required", model.ErrInvalidArgument)
	}
	if params.Audio == nil {
		return model.TrackView{}, fmt.Errorf("%w: audio file is required", model.ErrInvalidArgument)
	}

	tags, err := resolveTags(ctx, s.tags, params.Tags)
	if err != nil {
		return model.TrackView{}, err
	}

	audioKey, err := s.media.Store(ctx, model.MediaAudio, params.Audio)
	if err != nil {
		return model.TrackView{}, err
	}

	imageKey := model.DefaultImageKey
	if params.Image != nil {
		imageKey, err = s.media.Store(ctx, model.MediaImage, params.Image)
		if err != nil {
			s.media.Remove(ctx, audioKey)
			return model.TrackView{}, err
		}
	}

	track, err := s.tracks.Create(ctx, model.Track{
		ID:          uuid.New(),
		Name:        name,
		Description: params.Description,
		ImageKey:    imageKey,
		AudioKey:    audioKey,
		AuthorID:    actor.ID,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		s.media.Remove(ctx, audioKey)
		s.media.Remove(ctx, imageKey)
		s.logger.Error("Music service: failed to create track",
			"user_id", actor.ID.String(),
			"error", err.Error())
		return model.TrackView{}, fmt.Errorf("failed to create track: %w", err)
	}

	if len(tags) > 0 {
		if err := s.tags.SetTrackTags(ctx, track.ID, model.TagIDs(tags)); err != nil {
			return model.TrackView{}, fmt.Errorf("failed to tag track: %w", err)
		}
	}

	s.events.emit(ctx, model.EventTrackUploaded, actor.ID, track.ID, map[string]string{"name": track.Name})

	s.logger.Info("Music service: track created",
		"user_id", actor.ID.String(),
		"track_id", track.ID.String())

	return s.view(ctx, actor, track)
}

func (s *Music) List(ctx context.Context, actor model.User) ([]model.TrackView, error) {
	tracks, err := s.tracks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	return s.views(ctx, actor, tracks)
}

func (s *Music) Get(ctx context.Context, actor model.User, id uuid.UUID) (model.TrackView, error) {
	track, err := s.tracks.GetByID(ctx, id)
	if err != nil {
		return model.TrackView{}, err
	}
	return s.view(ctx, actor, track)
}

// Update changes the given fields of a track. Replaced media files are deleted.
func (s *Music) Update(ctx context.Context, actor model.User, id uuid.UUID, params model.UpdateTrackParams) (model.TrackView, error) {
	track, err := s.tracks.GetByID(ctx, id)
	if err != nil {
		return model.TrackView{}, err
	}
	if !canModify(actor, track) {
		return model.TrackView{}, model.ErrForbidden
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return model.TrackView{}, fmt.Errorf("%w: name must not be empty", model.ErrInvalidArgument)
		}
		track.Name = name
	}
	if params.Description != nil {
		track.Description = *params.Description
	}

	var tags []model.Tag
	if params.Tags != nil {
		tags, err = resolveTags(ctx, s.tags, params.Tags)
		if err != nil {
			return model.TrackView{}, err
		}
	}

	var replaced, uploaded []string
	if params.Audio != nil {
		key, err := s.media.Store(ctx, model.MediaAudio, params.Audio)
		if err != nil {
			return model.TrackView{}, err
		}
		uploaded = append(uploaded, key)
		replaced = append(replaced, track.AudioKey)
		track.AudioKey = key
	}
	if params.Image != nil {
		key, err := s.media.Store(ctx, model.MediaImage, params.Image)
		if err != nil {
			s.removeAll(ctx, uploaded)
			return model.TrackView{}, err
		}
		uploaded = append(uploaded, key)
		replaced = append(replaced, track.ImageKey)
		track.ImageKey = key
	}

	updated, err := s.tracks.Update(ctx, track)
	if err != nil {
		s.removeAll(ctx, uploaded)
		return model.TrackView{}, fmt.Errorf("failed to update track: %w", err)
	}
	s.removeAll(ctx, replaced)

	if params.Tags != nil {
		if err := s.tags.SetTrackTags(ctx, updated.ID, model.TagIDs(tags)); err != nil {
			return model.TrackView{}, fmt.Errorf("failed to tag track: %w", err)
		}
	}

	s.logger.Info("Music service: track updated",
		"user_id", actor.ID.String(),
		"track_id", updated.ID.String())

	return s.view(ctx, actor, updated)
}

// Delete removes a track and its media. Likes, saves and tags go with it.
func (s *Music) Delete(ctx context.Context, actor model.User, id uuid.UUID) error {
	track, err := s.tracks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, track) {
		return model.ErrForbidden
	}
	return s.delete(ctx, actor, track)
}

// DeleteAll removes every track uploaded by actor.
func (s *Music) DeleteAll(ctx context.Context, actor model.User) error {
	tracks, err := s.tracks.ListByAuthor(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}
	for _, track := range tracks {
		if err := s.delete(ctx, actor, track); err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *Music) delete(ctx context.Context, actor model.User, track model.Track) error {
	if err := s.tracks.Delete(ctx, track.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete track: %w", err)
	}
	s.media.Remove(ctx, track.AudioKey)
	s.media.Remove(ctx, track.ImageKey)

	s.events.emit(ctx, model.EventTrackDeleted, actor.ID, track.ID, nil)

	s.logger.Info("Music service: track deleted",
		"user_id", actor.ID.String(),
		"track_id", track.ID.String())
	return nil
}

// ToggleLike likes the track, or removes the existing like of actor.
func (s *Music) ToggleLike(ctx context.Context, actor model.User, id uuid.UUID) (model.TrackView, error) {
	track, err := s.tracks.GetByID(ctx, id)
	if err != nil {
		return model.TrackView{}, err
	}
	if _, err := s.likes.Toggle(ctx, actor.ID, track.ID); err != nil {
		return model.TrackView{}, fmt.Errorf("failed to toggle like: %w", err)
	}
	return s.view(ctx, actor, track)
}

// FindByTags returns tracks ordered by how many of the named tags they carry.
func (s *Music) FindByTags(ctx context.Context, actor model.User, names []string) ([]model.TrackView, error) {
	tags, err := resolveTags(ctx, s.tags, names)
	if err != nil {
		return nil, err
	}
	tracks, err := s.tracks.ListByTags(ctx, model.TagIDs(tags))
	if err != nil {
		return nil, fmt.Errorf("failed to find tracks by tags: %w", err)
	}
	return s.views(ctx, actor, tracks)
}

// Feed returns tracks of the users actor is subscribed to.
func (s *Music) Feed(ctx context.Context, actor model.User) ([]model.TrackView, error) {
	publishers, err := s.subscriptions.ListPublishers(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(publishers))
	for _, p := range publishers {
		ids = append(ids, p.ID)
	}

	tracks, err := s.tracks.ListByAuthors(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	return s.views(ctx, actor, tracks)
}

// Relevant returns tracks matching actor's tags. Without tags the most liked
// tracks come first, followed by all others.
func (s *Music) Relevant(ctx context.Context, actor model.User) ([]model.TrackView, error) {
	tags, err := s.tags.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user tags: %w", err)
	}

	if len(tags) > 0 {
		tracks, err := s.tracks.ListByTags(ctx, model.TagIDs(tags))
		if err != nil {
			return nil, fmt.Errorf("failed to find tracks by tags: %w", err)
		}
		return s.views(ctx, actor, tracks)
	}

	liked, err := s.tracks.ListMostLiked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list most liked tracks: %w", err)
	}
	all, err := s.tracks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(liked))
	ordered := make([]model.Track, 0, len(all))
	for _, t := range append(liked, all...) {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		ordered = append(ordered, t)
	}
	return s.views(ctx, actor, ordered)
}

// Save adds the track to actor's saved list. Saving twice is a no-op.
func (s *Music) Save(ctx context.Context, actor model.User, id uuid.UUID) (model.TrackView, error) {
	track, err := s.tracks.GetByID(ctx, id)
	if err != nil {
		return model.TrackView{}, err
	}
	if err := s.saves.Save(ctx, actor.ID, track.ID); err != nil {
		return model.TrackView{}, fmt.Errorf("failed to save track: %w", err)
	}
	return s.view(ctx, actor, track)
}

func (s *Music) Uploaded(ctx context.Context, actor model.User) ([]model.TrackView, error) {
	tracks, err := s.tracks.ListByAuthor(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploaded tracks: %w", err)
	}
	return s.views(ctx, actor, tracks)
}

func (s *Music) Saved(ctx context.Context, actor model.User) ([]model.TrackView, error) {
	tracks, err := s.saves.ListTracks(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved tracks: %w", err)
	}
	return s.views(ctx, actor, tracks)
}

func (s *Music) RemoveSaved(ctx context.Context, actor model.User, id uuid.UUID) error {
	return s.saves.Remove(ctx, actor.ID, id)
}

func (s *Music) ClearSaved(ctx context.Context, actor model.User) error {
	return s.saves.RemoveAll(ctx, actor.ID)
}

func (s *Music) removeAll(ctx context.Context, keys []string) {
	for _, k := range keys {
		s.media.Remove(ctx, k)
	}
}

func (s *Music) view(ctx context.Context, actor model.User, track model.Track) (model.TrackView, error) {
	views, err := s.views(ctx, actor, []model.Track{track})
	if err != nil {
		return model.TrackView{}, err
	}
	return views[0], nil
}

func (s *Music) views(ctx context.Context, actor model.User, tracks []model.Track) ([]model.TrackView, error) {
	if len(tracks) == 0 {
		return []model.TrackView{}, nil
	}

	authorIDs := make([]uuid.UUID, 0, len(tracks))
	for _, t := range tracks {
		authorIDs = append(authorIDs, t.AuthorID)
	}
	authors, err := usersByID(ctx, s.users, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]model.TrackView, 0, len(tracks))
	for _, t := range tracks {
		tags, err := s.tags.ListByTrack(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list track tags: %w", err)
		}
		count, err := s.likes.Count(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count likes: %w", err)
		}
		liked, err := s.likes.IsLiked(ctx, actor.ID, t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check like: %w", err)
		}

		views = append(views, model.TrackView{
			Track:      t,
			ImageURL:   s.media.URL(t.ImageKey),
			AudioURL:   s.media.URL(t.AudioKey),
			Author:     userView(s.media, authors[t.AuthorID], nil),
			Tags:       tags,
			LikesCount: count,
			IsLiked:    liked,
		})
	}
	return views, nil
}
