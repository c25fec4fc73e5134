package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/api/http/response"
	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// TagService is the tag use-case consumed by Tag and User.
type TagService interface {
	List(ctx context.Context) ([]model.Tag, error)
	ForTrack(ctx context.Context, trackID uuid.UUID) ([]model.Tag, error)
	ClearTrack(ctx context.Context, actor model.User, trackID uuid.UUID) error
	ForUser(ctx context.Context, actor model.User) ([]model.Tag, error)
	SetForUser(ctx context.Context, actor model.User, names []string) ([]model.Tag, error)
}

// Tag serves /api/v1/tags.
type Tag struct {
	service        TagService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewTag(service TagService, contextManager model.ContextManager, logger *logger.Logger) *Tag {
	return &Tag{service: service, contextManager: contextManager, logger: logger}
}

func (h *Tag) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newTagResponses(tags))
}

// ForTrack handles GET /{id}, the tags of a track.
func (h *Tag) ForTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	tags, err := h.service.ForTrack(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newTagResponses(tags))
}

// ClearTrack handles DELETE /{id}.
func (h *Tag) ClearTrack(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.service.ClearTrack(r.Context(), actor, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.Text(w, http.StatusOK, "Success: Tags has been removed!")
}
