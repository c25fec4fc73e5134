package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/api/http/response"
	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// UserService is the profile and subscription use-case consumed by User.
type UserService interface {
	Profile(ctx context.Context, actor model.User) (model.UserView, error)
	Update(ctx context.Context, actor model.User, params model.UpdateUserParams) (model.UserView, error)
	Subscriptions(ctx context.Context, actor model.User) ([]model.UserView, error)
	Subscribers(ctx context.Context, actor model.User) ([]model.UserView, error)
	Subscribe(ctx context.Context, actor model.User, publisherID uuid.UUID) (model.UserView, error)
	Unsubscribe(ctx context.Context, actor model.User, publisherID uuid.UUID) (model.UserView, error)
	UnsubscribeMany(ctx context.Context, actor model.User, ids []uuid.UUID) ([]model.UserView, error)
}

// User serves /api/v1/users.
type User struct {
	users          UserService
	music          MusicService
	tags           TagService
	contextManager model.ContextManager
	maxUpload      int64
	logger         *logger.Logger
}

func NewUser(
	users UserService,
	music MusicService,
	tags TagService,
	contextManager model.ContextManager,
	maxUpload int64,
	logger *logger.Logger,
) *User {
	return &User{
		users:          users,
		music:          music,
		tags:           tags,
		contextManager: contextManager,
		maxUpload:      maxUpload,
		logger:         logger,
	}
}

type idsRequest struct {
	IDs []uuid.UUID `validate:"required,min=1"`
}

func (h *User) Profile(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	view, err := h.users.Profile(r.Context(), actor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newUserResponse(view))
}

// Update handles PUT / with optional multipart fields username, biography and image.
func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}

	limitBody(w, r, h.maxUpload+multipartMemory)
	if err := parseForm(r); err != nil {
		writeError(w, h.logger, err)
		return
	}
	image, err := formFile(r, "image")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	defer closeFile(image)

	view, err := h.users.Update(r.Context(), actor, model.UpdateUserParams{
		Username:  formValue(r, "username"),
		Biography: formValue(r, "biography"),
		Image:     image,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newUserResponse(view))
}

func (h *User) Tags(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	tags, err := h.tags.ForUser(r.Context(), actor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newTagResponses(tags))
}

// SetTags handles POST /tags with a JSON array of tag names.
func (h *User) SetTags(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	limitBody(w, r, maxJSONBody)
	names, err := decodeNames(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	tags, err := h.tags.SetForUser(r.Context(), actor, names)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newTagResponses(tags))
}

func (h *User) Uploaded(w http.ResponseWriter, r *http.Request) {
	h.tracks(w, r, h.music.Uploaded)
}

func (h *User) Saved(w http.ResponseWriter, r *http.Request) {
	h.tracks(w, r, h.music.Saved)
}

func (h *User) Relevant(w http.ResponseWriter, r *http.Request) {
	h.tracks(w, r, h.music.Relevant)
}

func (h *User) RemoveSaved(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.music.RemoveSaved(r.Context(), actor, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.Text(w, http.StatusOK, "Saved song has been deleted!")
}

func (h *User) ClearSaved(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	if err := h.music.ClearSaved(r.Context(), actor); err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.Text(w, http.StatusOK, "All saved songs has been deleted!")
}

func (h *User) Subscriptions(w http.ResponseWriter, r *http.Request) {
	h.people(w, r, h.users.Subscriptions)
}

func (h *User) Subscribers(w http.ResponseWriter, r *http.Request) {
	h.people(w, r, h.users.Subscribers)
}

func (h *User) Subscribe(w http.ResponseWriter, r *http.Request) {
	h.person(w, r, h.users.Subscribe)
}

func (h *User) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	h.person(w, r, h.users.Unsubscribe)
}

// UnsubscribeMany handles DELETE /unsubscribe with a JSON array of user ids.
func (h *User) UnsubscribeMany(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	limitBody(w, r, maxJSONBody)
	var req idsRequest
	if err := decodeJSON(r, &req.IDs); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	views, err := h.users.UnsubscribeMany(r.Context(), actor, req.IDs)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newUserResponses(views))
}

func (h *User) tracks(w http.ResponseWriter, r *http.Request, fn func(context.Context, model.User) ([]model.TrackView, error)) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	views, err := fn(r.Context(), actor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newTrackResponses(views))
}

func (h *User) people(w http.ResponseWriter, r *http.Request, fn func(context.Context, model.User) ([]model.UserView, error)) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	views, err := fn(r.Context(), actor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newUserResponses(views))
}

func (h *User) person(w http.ResponseWriter, r *http.Request, fn func(context.Context, model.User, uuid.UUID) (model.UserView, error)) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	view, err := fn(r.Context(), actor, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newUserResponse(view))
}
