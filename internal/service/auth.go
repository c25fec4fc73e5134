package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// Auth registers users, issues token pairs and maintains the token ledger.
type Auth struct {
	userStore    model.UserStore
	tokenStore   model.TokenStore
	tokenManager model.TokenManager
	hasher       model.PasswordHasher
	media        *Media
	events       eventSink
	logger       *logger.Logger
	now          func() time.Time
}

func NewAuth(
	userStore model.UserStore,
	tokenStore model.TokenStore,
	tokenManager model.TokenManager,
	hasher model.PasswordHasher,
	media *Media,
	publisher model.EventPublisher,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenStore:   tokenStore,
		tokenManager: tokenManager,
		hasher:       hasher,
		media:        media,
		events:       eventSink{publisher: publisher, logger: logger},
		logger:       logger,
		now:          time.Now,
	}
}

// Register creates a USER account. The avatar is optional.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", params.Username)

	if params.Username == "" || params.Password == "" {
		return model.User{}, fmt.Errorf("%w: username and password are required", model.ErrInvalidArgument)
	}

	_, err := a.userStore.GetByUsername(ctx, params.Username)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"username", params.Username)
		return model.User{}, model.ErrDuplicateUser
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by username",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var imageKey string
	if params.Image != nil {
		imageKey, err = a.media.Store(ctx, model.MediaImage, params.Image)
		if err != nil {
			return model.User{}, err
		}
	}

	now := a.now().UTC()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		PasswordHash: hash,
		Role:         model.RoleUser,
		ImageKey:     imageKey,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		a.media.Remove(ctx, imageKey)
		if errors.Is(err, model.ErrDuplicateUser) {
			return model.User{}, err
		}
		a.logger.Error("Auth service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.events.emit(ctx, model.EventUserRegistered, user.ID, user.ID, map[string]string{"username": user.Username})

	a.logger.Info("Auth service: user registration completed successfully",
		"username", user.Username,
		"user_id", user.ID.String())

	return user, nil
}

// Authenticate checks credentials and issues a fresh token pair. Every
// previously valid access token of the user is revoked.
func (a *Auth) Authenticate(ctx context.Context, username, password string) (model.TokenPair, error) {
	a.logger.Debug("Auth service: starting user login",
		"username", username)

	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: password mismatch",
			"username", username)
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	access, err := a.tokenManager.GenerateToken(user)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := a.tokenManager.GenerateRefreshToken(user)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := a.record(ctx, user, access); err != nil {
		return model.TokenPair{}, err
	}

	a.events.emit(ctx, model.EventUserAuthenticated, user.ID, user.ID, nil)

	a.logger.Info("Auth service: user login completed successfully",
		"username", username,
		"user_id", user.ID.String())

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RefreshToken issues a new access token for a valid refresh token. The
// presented refresh token is returned unchanged.
func (a *Auth) RefreshToken(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	username, err := a.tokenManager.ExtractRefreshUsername(refreshToken)
	if err != nil {
		return model.TokenPair{}, err
	}

	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.TokenPair{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !a.tokenManager.IsTokenValid(refreshToken, user) {
		return model.TokenPair{}, model.ErrUnauthenticated
	}

	access, err := a.tokenManager.GenerateToken(user)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	if err := a.record(ctx, user, access); err != nil {
		return model.TokenPair{}, err
	}

	a.logger.Info("Auth service: access token refreshed",
		"user_id", user.ID.String())

	return model.TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Logout revokes the presented access token. Unknown or already revoked
// tokens are ignored.
func (a *Auth) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}

	stored, err := a.tokenStore.GetByToken(ctx, accessToken)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get token: %w", err)
	}
	if stored.Revoked {
		return nil
	}

	changed, err := a.tokenStore.Revoke(ctx, accessToken)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	if changed {
		a.events.emit(ctx, model.EventUserLoggedOut, stored.UserID, stored.UserID, nil)
		a.logger.Info("Auth service: user logged out",
			"user_id", stored.UserID.String())
	}
	return nil
}

// ExtractUsername validates the signature and expiry of an access token.
func (a *Auth) ExtractUsername(accessToken string) (string, error) {
	return a.tokenManager.ExtractUsername(accessToken)
}

// ResolveUser loads the named user and reports whether accessToken is both
// live in the ledger and cryptographically valid for that user.
func (a *Auth) ResolveUser(ctx context.Context, username, accessToken string) (model.User, bool, error) {
	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, false, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to get user by username: %w", err)
	}

	stored, err := a.tokenStore.GetByToken(ctx, accessToken)
	if errors.Is(err, model.ErrNotFound) {
		return user, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to get token: %w", err)
	}

	valid := stored.Valid() && stored.UserID == user.ID && a.tokenManager.IsTokenValid(accessToken, user)
	return user, valid, nil
}

// record revokes the user's live tokens and stores access as the only valid one.
func (a *Auth) record(ctx context.Context, user model.User, access string) error {
	err := a.tokenStore.Replace(ctx, user.ID, model.Token{
		ID:     uuid.New(),
		Token:  access,
		Type:   model.TokenTypeBearer,
		UserID: user.ID,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to store token",
			"user_id", user.ID.String(),
			"error", err.Error())
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}
