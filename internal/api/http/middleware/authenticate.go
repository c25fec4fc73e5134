package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dtroode/listenloud-server/internal/api/http/response"
	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

const (
	bearerPrefix = "Bearer "
	authPath     = "/api/v1/auth"
)

// Authenticator resolves bearer access tokens to users.
type Authenticator interface {
	ExtractUsername(token string) (string, error)
	ResolveUser(ctx context.Context, username, token string) (model.User, bool, error)
}

// Authenticate attaches the user behind a valid bearer token to the request context.
// Requests without a bearer token pass through unauthenticated.
type Authenticate struct {
	auth           Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(auth Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{auth: auth, contextManager: contextManager, logger: logger}
}

// Handle is the filter itself.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, authPath) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			next.ServeHTTP(w, r)
			return
		}
		token := header[len(bearerPrefix):]

		username, err := m.auth.ExtractUsername(token)
		if err != nil {
			m.logger.Debug("rejected bearer token",
				"path", r.URL.Path,
				"error", err.Error())
			response.Error(w, http.StatusUnauthorized, tokenErrorMessage(err))
			return
		}

		if _, ok := m.contextManager.GetUserFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		user, valid, err := m.auth.ResolveUser(r.Context(), username, token)
		if errors.Is(err, model.ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			m.logger.Error("failed to resolve user",
				"username", username,
				"error", err.Error())
			response.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if valid {
			r = r.WithContext(m.contextManager.SetUserToContext(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects requests that carry no authenticated user.
func (m *Authenticate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.contextManager.GetUserFromContext(r.Context()); !ok {
			response.Error(w, http.StatusUnauthorized, "Full authentication is required to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrTokenExpired):
		return "Access token has expired!"
	case errors.Is(err, model.ErrTokenMalformed):
		return "Access token is malformed!"
	default:
		return "Access token is invalid!"
	}
}
