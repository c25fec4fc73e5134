package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/listenloud-server/internal/model"
)

// TrackStore is a mock of model.TrackStore.
type TrackStore struct {
	mock.Mock
}

func NewTrackStore(t testingT) *TrackStore {
	m := &TrackStore{}
	register(&m.Mock, t)
	return m
}

func (m *TrackStore) Create(ctx context.Context, track model.Track) (model.Track, error) {
	args := m.Called(ctx, track)
	return ret[model.Track](args, 0), args.Error(1)
}

func (m *TrackStore) GetByID(ctx context.Context, id uuid.UUID) (model.Track, error) {
	args := m.Called(ctx, id)
	return ret[model.Track](args, 0), args.Error(1)
}

func (m *TrackStore) List(ctx context.Context) ([]model.Track, error) {
	args := m.Called(ctx)
	return ret[[]model.Track](args, 0), args.Error(1)
}

func (m *TrackStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Track, error) {
	args := m.Called(ctx, authorID)
	return ret[[]model.Track](args, 0), args.Error(1)
}

func (m *TrackStore) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]model.Track, error) {
	args := m.Called(ctx, authorIDs)
	return ret[[]model.Track](args, 0), args.Error(1)
}

func (m *TrackStore) ListByTags(ctx context.Context, tagIDs []int64) ([]model.Track, error) {
	args := m.Called(ctx, tagIDs)
	return ret[[]model.Track](args, 0), args.Error(1)
}

func (m *TrackStore) ListMostLiked(ctx context.Context) ([]model.Track, error) {
	args := m.Called(ctx)
	return ret[[]model.Track](args, 0), args.Error(1)
}

func (m *TrackStore) Update(ctx context.Context, track model.Track) (model.Track, error) {
	args := m.Called(ctx, track)
	return ret[model.Track](args, 0), args.Error(1)
}

func (m *TrackStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// LikeStore is a mock of model.LikeStore.
type LikeStore struct {
	mock.Mock
}

func NewLikeStore(t testingT) *LikeStore {
	m := &LikeStore{}
	register(&m.Mock, t)
	return m
}

func (m *LikeStore) Toggle(ctx context.Context, userID, trackID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, trackID)
	return args.Bool(0), args.Error(1)
}

func (m *LikeStore) IsLiked(ctx context.Context, userID, trackID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, trackID)
	return args.Bool(0), args.Error(1)
}

func (m *LikeStore) Count(ctx context.Context, trackID uuid.UUID) (int64, error) {
	args := m.Called(ctx, trackID)
	return ret[int64](args, 0), args.Error(1)
}

// SaveStore is a mock of model.SaveStore.
type SaveStore struct {
	mock.Mock
}

func NewSaveStore(t testingT) *SaveStore {
	m := &SaveStore{}
	register(&m.Mock, t)
	return m
}

func (m *SaveStore) Save(ctx context.Context, userID, trackID uuid.UUID) error {
	return m.Called(ctx, userID, trackID).Error(0)
}

func (m *SaveStore) Remove(ctx context.Context, userID, trackID uuid.UUID) error {
	return m.Called(ctx, userID, trackID).Error(0)
}

func (m *SaveStore) RemoveAll(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *SaveStore) ListTracks(ctx context.Context, userID uuid.UUID) ([]model.Track, error) {
	args := m.Called(ctx, userID)
	return ret[[]model.Track](args, 0), args.Error(1)
}

// TagStore is a mock of model.TagStore.
type TagStore struct {
	mock.Mock
}

func NewTagStore(t testingT) *TagStore {
	m := &TagStore{}
	register(&m.Mock, t)
	return m
}

func (m *TagStore) List(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	return ret[[]model.Tag](args, 0), args.Error(1)
}

func (m *TagStore) GetByNames(ctx context.Context, names []string) ([]model.Tag, error) {
	args := m.Called(ctx, names)
	return ret[[]model.Tag](args, 0), args.Error(1)
}

func (m *TagStore) ListByTrack(ctx context.Context, trackID uuid.UUID) ([]model.Tag, error) {
	args := m.Called(ctx, trackID)
	return ret[[]model.Tag](args, 0), args.Error(1)
}

func (m *TagStore) SetTrackTags(ctx context.Context, trackID uuid.UUID, tagIDs []int64) error {
	return m.Called(ctx, trackID, tagIDs).Error(0)
}

func (m *TagStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Tag, error) {
	args := m.Called(ctx, userID)
	return ret[[]model.Tag](args, 0), args.Error(1)
}

func (m *TagStore) SetUserTags(ctx context.Context, userID uuid.UUID, tagIDs []int64) error {
	return m.Called(ctx, userID, tagIDs).Error(0)
}
