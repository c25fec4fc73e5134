package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/listenloud-server/internal/model"
)

// AuthService is a mock of handler.AuthService.
type AuthService struct {
	mock.Mock
}

func NewAuthService(t testingT) *AuthService {
	m := &AuthService{}
	register(&m.Mock, t)
	return m
}

func (m *AuthService) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	args := m.Called(ctx, params)
	return ret[model.User](args, 0), args.Error(1)
}

func (m *AuthService) Authenticate(ctx context.Context, username, password string) (model.TokenPair, error) {
	args := m.Called(ctx, username, password)
	return ret[model.TokenPair](args, 0), args.Error(1)
}

func (m *AuthService) RefreshToken(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return ret[model.TokenPair](args, 0), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

// MusicService is a mock of handler.MusicService.
type MusicService struct {
	mock.Mock
}

func NewMusicService(t testingT) *MusicService {
	m := &MusicService{}
	register(&m.Mock, t)
	return m
}

func (m *MusicService) Create(ctx context.Context, actor model.User, params model.CreateTrackParams) (model.TrackView, error) {
	args := m.Called(ctx, actor, params)
	return ret[model.TrackView](args, 0), args.Error(1)
}

func (m *MusicService) List(ctx context.Context, actor model.User) ([]model.TrackView, error) {
	args := m.Called(ctx, actor)
	return ret[[]model.TrackView](args, 0), args.Error(1)
}

func (m *MusicService) Get(ctx context.Context, actor model.User, id uuid.UUID) (model.TrackView, error) {
	args := m.Called(ctx, actor, id)
	return ret[model.TrackView](args, 0), args.Error(1)
}

func (m *MusicService) Update(ctx context.Context, actor model.User, id uuid.UUID, params model.UpdateTrackParams) (model.TrackView, error) {
	args := m.Called(ctx, actor, id, params)
	return ret[model.TrackView](args, 0), args.Error(1)
}

func (m *MusicService) Delete(ctx context.Context, actor model.User, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MusicService) DeleteAll(ctx context.Context, actor model.User) error {
	return m.Called(ctx, actor).Error(0)
}

func (m *MusicService) ToggleLike(ctx context.Context, actor model.User, id uuid.UUID) (model.TrackView, error) {
	args := m.Called(ctx, actor, id)
	return ret[model.TrackView](args, 0), args.Error(1)
}

func (m *MusicService) FindByTags(ctx context.Context, actor model.User, names []string) ([]model.TrackView, error) {
	args := m.Called(ctx, actor, names)
	return ret[[]model.TrackView](args, 0), args.Error(1)
}

func (m *MusicService) Feed(ctx context.Context, actor model.User) ([]model.TrackView, error) {
	args := m.Called(ctx, actor)
	return ret[[]model.TrackView](args, 0), args.Error(1)
}

func (m *MusicService) Relevant(ctx context.Context, actor model.User) ([]model.TrackView, error) {
	args := m.Called(ctx, actor)
	return ret[[]model.TrackView](args, 0), args.Error(1)
}

func (m *MusicService) Save(ctx context.Context, actor model.User, id uuid.UUID) (model.TrackView, error) {
	args := m.Called(ctx, actor, id)
	return ret[model.TrackView](args, 0), args.Error(1)
}

func (m *MusicService) Uploaded(ctx context.Context, actor model.User) ([]model.TrackView, error) {
	args := m.Called(ctx, actor)
	return ret[[]model.TrackView](args, 0), args.Error(1)
}

func (m *MusicService) Saved(ctx context.Context, actor model.User) ([]model.TrackView, error) {
	args := m.Called(ctx, actor)
	return ret[[]model.TrackView](args, 0), args.Error(1)
}

func (m *MusicService) RemoveSaved(ctx context.Context, actor model.User, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MusicService) ClearSaved(ctx context.Context, actor model.User) error {
	return m.Called(ctx, actor).Error(0)
}

// UserService is a mock of handler.UserService.
type UserService struct {
	mock.Mock
}

func NewUserService(t testingT) *UserService {
	m := &UserService{}
	register(&m.Mock, t)
	return m
}

func (m *UserService) Profile(ctx context.Context, actor model.User) (model.UserView, error) {
	args := m.Called(ctx, actor)
	return ret[model.UserView](args, 0), args.Error(1)
}

func (m *UserService) Update(ctx context.Context, actor model.User, params model.UpdateUserParams) (model.UserView, error) {
	args := m.Called(ctx, actor, params)
	return ret[model.UserView](args, 0), args.Error(1)
}

func (m *UserService) Subscriptions(ctx context.Context, actor model.User) ([]model.UserView, error) {
	args := m.Called(ctx, actor)
	return ret[[]model.UserView](args, 0), args.Error(1)
}

func (m *UserService) Subscribers(ctx context.Context, actor model.User) ([]model.UserView, error) {
	args := m.Called(ctx, actor)
	return ret[[]model.UserView](args, 0), args.Error(1)
}

func (m *UserService) Subscribe(ctx context.Context, actor model.User, publisherID uuid.UUID) (model.UserView, error) {
	args := m.Called(ctx, actor, publisherID)
	return ret[model.UserView](args, 0), args.Error(1)
}

func (m *UserService) Unsubscribe(ctx context.Context, actor model.User, publisherID uuid.UUID) (model.UserView, error) {
	args := m.Called(ctx, actor, publisherID)
	return ret[model.UserView](args, 0), args.Error(1)
}

func (m *UserService) UnsubscribeMany(ctx context.Context, actor model.User, ids []uuid.UUID) ([]model.UserView, error) {
	args := m.Called(ctx, actor, ids)
	return ret[[]model.UserView](args, 0), args.Error(1)
}

// TagService is a mock of handler.TagService.
type TagService struct {
	mock.Mock
}

func NewTagService(t testingT) *TagService {
	m := &TagService{}
	register(&m.Mock, t)
	return m
}

func (m *TagService) List(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	return ret[[]model.Tag](args, 0), args.Error(1)
}

func (m *TagService) ForTrack(ctx context.Context, trackID uuid.UUID) ([]model.Tag, error) {
	args := m.Called(ctx, trackID)
	return ret[[]model.Tag](args, 0), args.Error(1)
}

func (m *TagService) ClearTrack(ctx context.Context, actor model.User, trackID uuid.UUID) error {
	return m.Called(ctx, actor, trackID).Error(0)
}

func (m *TagService) ForUser(ctx context.Context, actor model.User) ([]model.Tag, error) {
	args := m.Called(ctx, actor)
	return ret[[]model.Tag](args, 0), args.Error(1)
}

func (m *TagService) SetForUser(ctx context.Context, actor model.User, names []string) ([]model.Tag, error) {
	args := m.Called(ctx, actor, names)
	return ret[[]model.Tag](args, 0), args.Error(1)
}

// MessageService is a mock of handler.MessageService.
type MessageService struct {
	mock.Mock
}

func NewMessageService(t testingT) *MessageService {
	m := &MessageService{}
	register(&m.Mock, t)
	return m
}

func (m *MessageService) Send(ctx context.Context, actor model.User, recipientID uuid.UUID, content string) (model.MessageView, error) {
	args := m.Called(ctx, actor, recipientID, content)
	return ret[model.MessageView](args, 0), args.Error(1)
}

func (m *MessageService) Dialogues(ctx context.Context, actor model.User) ([]model.MessageView, error) {
	args := m.Called(ctx, actor)
	return ret[[]model.MessageView](args, 0), args.Error(1)
}

func (m *MessageService) Conversation(ctx context.Context, actor model.User, partnerID uuid.UUID) ([]model.MessageView, error) {
	args := m.Called(ctx, actor, partnerID)
	return ret[[]model.MessageView](args, 0), args.Error(1)
}

func (m *MessageService) DeleteConversation(ctx context.Context, actor model.User, partnerID uuid.UUID) error {
	return m.Called(ctx, actor, partnerID).Error(0)
}

func (m *MessageService) Delete(ctx context.Context, actor model.User, partnerID, messageID uuid.UUID) error {
	return m.Called(ctx, actor, partnerID, messageID).Error(0)
}

func (m *MessageService) Edit(ctx context.Context, actor model.User, partnerID, messageID uuid.UUID, content string) (model.MessageView, error) {
	args := m.Called(ctx, actor, partnerID, messageID, content)
	return ret[model.MessageView](args, 0), args.Error(1)
}

// MediaService is a mock of handler.MediaService.
type MediaService struct {
	mock.Mock
}

func NewMediaService(t testingT) *MediaService {
	m := &MediaService{}
	register(&m.Mock, t)
	return m
}

func (m *MediaService) Open(ctx context.Context, kind model.MediaKind, name string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, kind, name)
	return ret[io.ReadCloser](args, 0), args.String(1), args.Error(2)
}

// Pinger is a mock of handler.Pinger.
type Pinger struct {
	mock.Mock
}

func NewPinger(t testingT) *Pinger {
	m := &Pinger{}
	register(&m.Mock, t)
	return m
}

func (m *Pinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
