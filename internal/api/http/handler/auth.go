package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/listenloud-server/internal/api/http/response"
	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// AuthService is the authentication use-case consumed by Auth.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.User, error)
	Authenticate(ctx context.Context, username, password string) (model.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
}

// Auth serves /api/v1/auth.
type Auth struct {
	service   AuthService
	maxUpload int64
	logger    *logger.Logger
}

func NewAuth(service AuthService, maxUpload int64, logger *logger.Logger) *Auth {
	return &Auth{service: service, maxUpload: maxUpload, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// Register handles POST /register with form fields username, password and an optional image.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r, h.maxUpload+multipartMemory)
	if err := parseForm(r); err != nil {
		writeError(w, h.logger, err)
		return
	}

	req := credentialsRequest{Username: r.PostFormValue("username"), Password: r.PostFormValue("password")}
	if err := validate.Struct(req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	image, err := formFile(r, "image")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	defer closeFile(image)

	_, err = h.service.Register(r.Context(), model.RegisterParams{
		Username: req.Username,
		Password: req.Password,
		Image:    image,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Text(w, http.StatusOK, "Successfully created user!")
}

// Authenticate handles POST /authenticate. Credentials come as form fields or a JSON object.
func (h *Auth) Authenticate(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r, maxJSONBody)

	var req credentialsRequest
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, h.logger, err)
			return
		}
	} else {
		if err := parseForm(r); err != nil {
			writeError(w, h.logger, err)
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	pair, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// RefreshToken handles POST /refresh-token with the refresh token as bearer credential.
func (h *Auth) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, h.logger, model.ErrUnauthenticated)
		return
	}

	pair, err := h.service.RefreshToken(r.Context(), token)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// Logout handles POST /logout. It always answers 200.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), bearerToken(r)); err != nil {
		h.logger.Error("failed to logout",
			"error", err.Error())
	}
	w.WriteHeader(http.StatusOK)
}
