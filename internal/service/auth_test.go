package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/listenloud-server/internal/mocks"
	"github.com/dtroode/listenloud-server/internal/model"
	"github.com/dtroode/listenloud-server/internal/testutil"
)

type authDeps struct {
	users  *mocks.UserStore
	tokens *mocks.TokenStore
	jwt    *mocks.TokenManager
	hasher *mocks.PasswordHasher
	blobs  *mocks.BlobStore
	events *mocks.EventPublisher
}

func newTestAuth(t *testing.T) (*Auth, authDeps) {
	t.Helper()
	d := authDeps{
		users:  mocks.NewUserStore(t),
		tokens: mocks.NewTokenStore(t),
		jwt:    mocks.NewTokenManager(t),
		hasher: mocks.NewPasswordHasher(t),
		blobs:  mocks.NewBlobStore(t),
		events: mocks.NewEventPublisher(t),
	}
	log := testutil.MakeNoopLogger()
	media := NewMedia(d.blobs, 1024, "/media/", log)
	return NewAuth(d.users, d.tokens, d.jwt, d.hasher, media, d.events, log), d
}

func tokenFor(user model.User, access string) any {
	return mock.MatchedBy(func(tok model.Token) bool {
		return tok.Token == access && tok.UserID == user.ID &&
			tok.Type == model.TokenTypeBearer && tok.ID != uuid.Nil &&
			!tok.Revoked && !tok.Expired
	})
}

func TestAuth_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with default role", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.users.On("GetByUsername", mock.Anything, "alice").Return(model.User{}, model.ErrNotFound)
		d.hasher.On("Hash", "secret").Return("hashed", nil)
		d.users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			return u.Username == "alice" && u.PasswordHash == "hashed" &&
				u.Role == model.RoleUser && u.ImageKey == "" && u.ID != uuid.Nil
		})).Return(model.User{ID: uuid.New(), Username: "alice", Role: model.RoleUser}, nil)
		d.events.On("Publish", mock.Anything, mock.MatchedBy(func(e model.Event) bool {
			return e.Type == model.EventUserRegistered
		})).Return(nil)

		user, err := a.Register(ctx, model.RegisterParams{Username: "alice", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, model.RoleUser, user.Role)
	})

	t.Run("stores avatar", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.users.On("GetByUsername", mock.Anything, "bob").Return(model.User{}, model.ErrNotFound)
		d.hasher.On("Hash", "pw").Return("h", nil)
		d.blobs.On("Upload", mock.Anything, mock.MatchedBy(func(k string) bool {
			return strings.HasPrefix(k, "image/") && strings.HasSuffix(k, ".png")
		}), mock.Anything, int64(3), "image/png").Return(nil)
		d.users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			return strings.HasPrefix(u.ImageKey, "image/")
		})).Return(model.User{ID: uuid.New(), Username: "bob"}, nil)
		d.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

		_, err := a.Register(ctx, model.RegisterParams{
			Username: "bob",
			Password: "pw",
			Image:    &model.File{ContentType: "image/png", Size: 3, Reader: strings.NewReader("png")},
		})
		require.NoError(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.users.On("GetByUsername", mock.Anything, "alice").Return(model.User{ID: uuid.New()}, nil)

		_, err := a.Register(ctx, model.RegisterParams{Username: "alice", Password: "secret"})
		assert.ErrorIs(t, err, model.ErrDuplicateUser)
	})

	t.Run("duplicate detected on insert removes avatar", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.users.On("GetByUsername", mock.Anything, "bob").Return(model.User{}, model.ErrNotFound)
		d.hasher.On("Hash", "pw").Return("h", nil)
		d.blobs.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		d.users.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrDuplicateUser)
		d.blobs.On("Delete", mock.Anything, mock.MatchedBy(func(k string) bool {
			return strings.HasPrefix(k, "image/")
		})).Return(nil)

		_, err := a.Register(ctx, model.RegisterParams{
			Username: "bob",
			Password: "pw",
			Image:    &model.File{ContentType: "image/jpeg", Size: 3, Reader: strings.NewReader("jpg")},
		})
		assert.ErrorIs(t, err, model.ErrDuplicateUser)
	})

	t.Run("unsupported avatar type", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.users.On("GetByUsername", mock.Anything, "bob").Return(model.User{}, model.ErrNotFound)
		d.hasher.On("Hash", "pw").Return("h", nil)

		_, err := a.Register(ctx, model.RegisterParams{
			Username: "bob",
			Password: "pw",
			Image:    &model.File{ContentType: "image/gif", Size: 3, Reader: strings.NewReader("gif")},
		})
		assert.ErrorIs(t, err, model.ErrUnsupportedMediaType)
	})

	t.Run("missing fields", func(t *testing.T) {
		a, _ := newTestAuth(t)
		_, err := a.Register(ctx, model.RegisterParams{Username: "alice"})
		assert.ErrorIs(t, err, model.ErrInvalidArgument)
	})
}

func TestAuth_Authenticate(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Username: "alice", PasswordHash: "hashed"}

	t.Run("issues pair and replaces ledger entry", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
		d.hasher.On("Verify", "secret", "hashed").Return(true)
		d.jwt.On("GenerateToken", user).Return("access-1", nil)
		d.jwt.On("GenerateRefreshToken", user).Return("refresh-1", nil)
		d.tokens.On("Replace", mock.Anything, user.ID, tokenFor(user, "access-1")).Return(nil)
		d.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

		pair, err := a.Authenticate(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, model.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, pair)
	})

	t.Run("second login replaces again", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
		d.hasher.On("Verify", "secret", "hashed").Return(true)
		d.jwt.On("GenerateToken", user).Return("access-1", nil).Once()
		d.jwt.On("GenerateToken", user).Return("access-2", nil).Once()
		d.jwt.On("GenerateRefreshToken", user).Return("refresh", nil)
		d.tokens.On("Replace", mock.Anything, user.ID, tokenFor(user, "access-1")).Return(nil).Once()
		d.tokens.On("Replace", mock.Anything, user.ID, tokenFor(user, "access-2")).Return(nil).Once()
		d.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

		first, err := a.Authenticate(ctx, "alice", "secret")
		require.NoError(t, err)
		second, err := a.Authenticate(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.NotEqual(t, first.AccessToken, second.AccessToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.users.On("GetByUsername", mock.Anything, "ghost").Return(model.User{}, model.ErrNotFound)

		_, err := a.Authenticate(ctx, "ghost", "secret")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
		d.hasher.On("Verify", "nope", "hashed").Return(false)

		_, err := a.Authenticate(ctx, "alice", "nope")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("ledger failure", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
		d.hasher.On("Verify", "secret", "hashed").Return(true)
		d.jwt.On("GenerateToken", user).Return("access", nil)
		d.jwt.On("GenerateRefreshToken", user).Return("refresh", nil)
		d.tokens.On("Replace", mock.Anything, user.ID, mock.Anything).Return(errors.New("db down"))

		_, err := a.Authenticate(ctx, "alice", "secret")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to store token")
	})

	t.Run("publish failure does not fail login", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
		d.hasher.On("Verify", "secret", "hashed").Return(true)
		d.jwt.On("GenerateToken", user).Return("access", nil)
		d.jwt.On("GenerateRefreshToken", user).Return("refresh", nil)
		d.tokens.On("Replace", mock.Anything, user.ID, mock.Anything).Return(nil)
		d.events.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

		_, err := a.Authenticate(ctx, "alice", "secret")
		assert.NoError(t, err)
	})
}

func TestAuth_RefreshToken(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Username: "alice"}

	t.Run("issues new access token", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.jwt.On("ExtractRefreshUsername", "refresh").Return("alice", nil)
		d.users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
		d.jwt.On("IsTokenValid", "refresh", user).Return(true)
		d.jwt.On("GenerateToken", user).Return("access-2", nil)
		d.tokens.On("Replace", mock.Anything, user.ID, tokenFor(user, "access-2")).Return(nil)

		pair, err := a.RefreshToken(ctx, "refresh")
		require.NoError(t, err)
		assert.Equal(t, "access-2", pair.AccessToken)
		assert.Equal(t, "refresh", pair.RefreshToken)
	})

	t.Run("expired", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.jwt.On("ExtractRefreshUsername", "old").Return("", model.ErrTokenExpired)

		_, err := a.RefreshToken(ctx, "old")
		assert.ErrorIs(t, err, model.ErrTokenExpired)
	})

	t.Run("user deleted", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.jwt.On("ExtractRefreshUsername", "refresh").Return("alice", nil)
		d.users.On("GetByUsername", mock.Anything, "alice").Return(model.User{}, model.ErrNotFound)

		_, err := a.RefreshToken(ctx, "refresh")
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})

	t.Run("token for another user", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.jwt.On("ExtractRefreshUsername", "refresh").Return("alice", nil)
		d.users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
		d.jwt.On("IsTokenValid", "refresh", user).Return(false)

		_, err := a.RefreshToken(ctx, "refresh")
		assert.ErrorIs(t, err, model.ErrUnauthenticated)
	})
}

func TestAuth_Logout(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("revokes live token", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.tokens.On("GetByToken", mock.Anything, "access").Return(model.Token{Token: "access", UserID: userID}, nil)
		d.tokens.On("Revoke", mock.Anything, "access").Return(true, nil)
		d.events.On("Publish", mock.Anything, mock.MatchedBy(func(e model.Event) bool {
			return e.Type == model.EventUserLoggedOut && e.UserID == userID
		})).Return(nil)

		assert.NoError(t, a.Logout(ctx, "access"))
	})

	t.Run("already revoked is a no-op", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.tokens.On("GetByToken", mock.Anything, "access").Return(model.Token{Revoked: true, Expired: true}, nil)

		assert.NoError(t, a.Logout(ctx, "access"))
	})

	t.Run("unknown token", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.tokens.On("GetByToken", mock.Anything, "other").Return(model.Token{}, model.ErrNotFound)

		assert.NoError(t, a.Logout(ctx, "other"))
	})

	t.Run("empty token", func(t *testing.T) {
		a, _ := newTestAuth(t)
		assert.NoError(t, a.Logout(ctx, ""))
	})
}

func TestAuth_ResolveUser(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Username: "alice"}

	tests := []struct {
		name      string
		stored    model.Token
		storeErr  error
		cryptoOK  bool
		wantValid bool
	}{
		{name: "live and valid", stored: model.Token{UserID: user.ID}, cryptoOK: true, wantValid: true},
		{name: "revoked", stored: model.Token{UserID: user.ID, Revoked: true, Expired: true}, cryptoOK: true},
		{name: "not in ledger", storeErr: model.ErrNotFound},
		{name: "owned by another user", stored: model.Token{UserID: uuid.New()}, cryptoOK: true},
		{name: "signature mismatch", stored: model.Token{UserID: user.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, d := newTestAuth(t)
			d.users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
			d.tokens.On("GetByToken", mock.Anything, "access").Return(tt.stored, tt.storeErr)
			d.jwt.On("IsTokenValid", "access", user).Return(tt.cryptoOK).Maybe()

			got, valid, err := a.ResolveUser(ctx, "alice", "access")
			require.NoError(t, err)
			assert.Equal(t, user, got)
			assert.Equal(t, tt.wantValid, valid)
		})
	}

	t.Run("user missing", func(t *testing.T) {
		a, d := newTestAuth(t)
		d.users.On("GetByUsername", mock.Anything, "ghost").Return(model.User{}, model.ErrNotFound)

		_, _, err := a.ResolveUser(ctx, "ghost", "access")
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}
