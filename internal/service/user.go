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

// User manages profiles and subscriptions.
type User struct {
	users         model.UserStore
	subscriptions model.SubscriptionStore
	tags          model.TagStore
	media         *Media
	logger        *logger.Logger
	now           func() time.Time
}

func NewUser(
	users model.UserStore,
	subscriptions model.SubscriptionStore,
	tags model.TagStore,
	media *Media,
	logger *logger.Logger,
) *User {
	return &User{
		users:         users,
		subscriptions: subscriptions,
		tags:          tags,
		media:         media,
		logger:        logger,
		now:           time.Now,
	}
}

// Profile returns actor's own profile with their tags.
func (s *User) Profile(ctx context.Context, actor model.User) (model.UserView, error) {
	tags, err := s.tags.ListByUser(ctx, actor.ID)
	if err != nil {
		return model.UserView{}, fmt.Errorf("failed to list user tags: %w", err)
	}
	return userView(s.media, actor, tags), nil
}

// Update changes the given profile fields. A replaced avatar is deleted.
// Changing the username invalidates tokens issued for the old name.
func (s *User) Update(ctx context.Context, actor model.User, params model.UpdateUserParams) (model.UserView, error) {
	user := actor

	if params.Username != nil {
		username := strings.TrimSpace(*params.Username)
		if username == "" {
			return model.UserView{}, fmt.Errorf("%w: username must not be empty", model.ErrInvalidArgument)
		}
		if username != user.Username {
			_, err := s.users.GetByUsername(ctx, username)
			if err == nil {
				return model.UserView{}, model.ErrDuplicateUser
			}
			if !errors.Is(err, model.ErrNotFound) {
				return model.UserView{}, fmt.Errorf("failed to get user by username: %w", err)
			}
		}
		user.Username = username
	}
	if params.Biography != nil {
		user.Biography = *params.Biography
	}

	var uploaded string
	if params.Image != nil {
		key, err := s.media.Store(ctx, model.MediaImage, params.Image)
		if err != nil {
			return model.UserView{}, err
		}
		uploaded = key
		user.ImageKey = key
	}
	user.UpdatedAt = s.now().UTC()

	saved, err := s.users.Update(ctx, user)
	if err != nil {
		s.media.Remove(ctx, uploaded)
		if errors.Is(err, model.ErrDuplicateUser) {
			return model.UserView{}, err
		}
		s.logger.Error("User service: failed to update user",
			"user_id", actor.ID.String(),
			"error", err.Error())
		return model.UserView{}, fmt.Errorf("failed to update user: %w", err)
	}
	if uploaded != "" {
		s.media.Remove(ctx, actor.ImageKey)
	}

	s.logger.Info("User service: profile updated",
		"user_id", saved.ID.String())

	return s.Profile(ctx, saved)
}

func (s *User) Subscriptions(ctx context.Context, actor model.User) ([]model.UserView, error) {
	users, err := s.subscriptions.ListPublishers(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return s.views(users), nil
}

func (s *User) Subscribers(ctx context.Context, actor model.User) ([]model.UserView, error) {
	users, err := s.subscriptions.ListSubscribers(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return s.views(users), nil
}

// Subscribe makes actor follow the publisher. Users cannot follow themselves.
func (s *User) Subscribe(ctx context.Context, actor model.User, publisherID uuid.UUID) (model.UserView, error) {
	if publisherID == actor.ID {
		return model.UserView{}, fmt.Errorf("%w: cannot subscribe to yourself", model.ErrInvalidArgument)
	}

	publisher, err := s.getUser(ctx, publisherID)
	if err != nil {
		return model.UserView{}, err
	}

	if err := s.subscriptions.Subscribe(ctx, actor.ID, publisher.ID); err != nil {
		return model.UserView{}, fmt.Errorf("failed to subscribe: %w", err)
	}

	s.logger.Info("User service: subscribed",
		"subscriber_id", actor.ID.String(),
		"publisher_id", publisher.ID.String())

	return userView(s.media, publisher, nil), nil
}

func (s *User) Unsubscribe(ctx context.Context, actor model.User, publisherID uuid.UUID) (model.UserView, error) {
	publisher, err := s.getUser(ctx, publisherID)
	if err != nil {
		return model.UserView{}, err
	}

	if err := s.subscriptions.Unsubscribe(ctx, actor.ID, publisher.ID); err != nil {
		return model.UserView{}, err
	}
	return userView(s.media, publisher, nil), nil
}

// UnsubscribeMany removes the subscriptions to every known user in ids.
func (s *User) UnsubscribeMany(ctx context.Context, actor model.User, ids []uuid.UUID) ([]model.UserView, error) {
	publishers, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	found := make([]uuid.UUID, 0, len(publishers))
	for _, p := range publishers {
		found = append(found, p.ID)
	}
	if err := s.subscriptions.UnsubscribeMany(ctx, actor.ID, found); err != nil {
		return nil, fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return s.views(publishers), nil
}

func (s *User) getUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (s *User) views(users []model.User) []model.UserView {
	views := make([]model.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, userView(s.media, u, nil))
	}
	return views
}
