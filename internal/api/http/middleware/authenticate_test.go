package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apictx "github.com/dtroode/listenloud-server/internal/api/http/context"
	"github.com/dtroode/listenloud-server/internal/api/http/response"
	"github.com/dtroode/listenloud-server/internal/mocks"
	"github.com/dtroode/listenloud-server/internal/model"
	"github.com/dtroode/listenloud-server/internal/testutil"
)

// probe records the user seen by the next handler.
type probe struct {
	called bool
	user   model.User
	authed bool
}

func (p *probe) handler(cm model.ContextManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.user, p.authed = cm.GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	user := model.User{ID: uuid.New(), Username: "alice"}

	tests := []struct {
		name       string
		path       string
		header     string
		setup      func(a *mocks.Authenticator)
		wantStatus int
		wantNext   bool
		wantAuthed bool
		wantCode   string
	}{
		{
			name:       "auth path skips filter",
			path:       "/api/v1/auth/authenticate",
			header:     "Bearer whatever",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "no header",
			path:       "/api/v1/music",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "non bearer scheme",
			path:       "/api/v1/music",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:   "expired token",
			path:   "/api/v1/music",
			header: "Bearer expired",
			setup: func(a *mocks.Authenticator) {
				a.On("ExtractUsername", "expired").Return("", model.ErrTokenExpired)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:   "malformed token",
			path:   "/api/v1/music",
			header: "Bearer junk",
			setup: func(a *mocks.Authenticator) {
				a.On("ExtractUsername", "junk").Return("", model.ErrTokenMalformed)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:   "user gone",
			path:   "/api/v1/music",
			header: "Bearer token",
			setup: func(a *mocks.Authenticator) {
				a.On("ExtractUsername", "token").Return("alice", nil)
				a.On("ResolveUser", mock.Anything, "alice", "token").Return(model.User{}, false, model.ErrUserNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:   "store failure",
			path:   "/api/v1/music",
			header: "Bearer token",
			setup: func(a *mocks.Authenticator) {
				a.On("ExtractUsername", "token").Return("alice", nil)
				a.On("ResolveUser", mock.Anything, "alice", "token").Return(model.User{}, false, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:   "revoked token continues unauthenticated",
			path:   "/api/v1/music",
			header: "Bearer token",
			setup: func(a *mocks.Authenticator) {
				a.On("ExtractUsername", "token").Return("alice", nil)
				a.On("ResolveUser", mock.Anything, "alice", "token").Return(user, false, nil)
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:   "valid token attaches user",
			path:   "/api/v1/music",
			header: "Bearer token",
			setup: func(a *mocks.Authenticator) {
				a.On("ExtractUsername", "token").Return("alice", nil)
				a.On("ResolveUser", mock.Anything, "alice", "token").Return(user, true, nil)
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
			wantAuthed: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auth := mocks.NewAuthenticator(t)
			if tt.setup != nil {
				tt.setup(auth)
			}
			cm := apictx.NewManager()
			mw := NewAuthenticate(auth, cm, testutil.MakeNoopLogger())

			var p probe
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw.Handle(p.handler(cm)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, p.called)
			assert.Equal(t, tt.wantAuthed, p.authed)
			if tt.wantAuthed {
				assert.Equal(t, user, p.user)
			}
			if tt.wantCode != "" {
				var body response.ErrorBody
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "error", body.Status)
				assert.Equal(t, tt.wantCode, body.Code)
				assert.NotEmpty(t, body.Message)
			}
		})
	}
}

func TestAuthenticate_HandleKeepsExistingUser(t *testing.T) {
	auth := mocks.NewAuthenticator(t)
	auth.On("ExtractUsername", "token").Return("alice", nil)

	cm := apictx.NewManager()
	existing := model.User{ID: uuid.New(), Username: "alice"}
	mw := NewAuthenticate(auth, cm, testutil.MakeNoopLogger())

	var p probe
	req := httptest.NewRequest(http.MethodGet, "/api/v1/music", nil)
	req.Header.Set("Authorization", "Bearer token")
	req = req.WithContext(cm.SetUserToContext(req.Context(), existing))
	rec := httptest.NewRecorder()
	mw.Handle(p.handler(cm)).ServeHTTP(rec, req)

	assert.True(t, p.called)
	assert.Equal(t, existing, p.user)
}

func TestAuthenticate_RequireUser(t *testing.T) {
	cm := apictx.NewManager()
	mw := NewAuthenticate(nil, cm, testutil.MakeNoopLogger())

	t.Run("rejects anonymous", func(t *testing.T) {
		var p probe
		rec := httptest.NewRecorder()
		mw.RequireUser(p.handler(cm)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, p.called)
	})

	t.Run("passes authenticated", func(t *testing.T) {
		var p probe
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req = req.WithContext(cm.SetUserToContext(req.Context(), model.User{ID: uuid.New()}))
		rec := httptest.NewRecorder()
		mw.RequireUser(p.handler(cm)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, p.called)
	})
}
