package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/api/http/response"
	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// MusicService is the track use-case consumed by Music and User.
type MusicService interface {
	Create(ctx context.Context, actor model.User, params model.CreateTrackParams) (model.TrackView, error)
	List(ctx context.Context, actor model.User) ([]model.TrackView, error)
	Get(ctx context.Context, actor model.User, id uuid.UUID) (model.TrackView, error)
	Update(ctx context.Context, actor model.User, id uuid.UUID, params model.UpdateTrackParams) (model.TrackView, error)
	Delete(ctx context.Context, actor model.User, id uuid.UUID) error
	DeleteAll(ctx context.Context, actor model.User) error
	ToggleLike(ctx context.Context, actor model.User, id uuid.UUID) (model.TrackView, error)
	FindByTags(ctx context.Context, actor model.User, names []string) ([]model.TrackView, error)
	Feed(ctx context.Context, actor model.User) ([]model.TrackView, error)
	Relevant(ctx context.Context, actor model.User) ([]model.TrackView, error)
	Save(ctx context.Context, actor model.User, id uuid.UUID) (model.TrackView, error)
	Uploaded(ctx context.Context, actor model.User) ([]model.TrackView, error)
	Saved(ctx context.Context, actor model.User) ([]model.TrackView, error)
	RemoveSaved(ctx context.Context, actor model.User, id uuid.UUID) error
	ClearSaved(ctx context.Context, actor model.User) error
}

// Music serves /api/v1/music.
type Music struct {
	service        MusicService
	contextManager model.ContextManager
	maxUpload      int64
	logger         *logger.Logger
}

func NewMusic(service MusicService, contextManager model.ContextManager, maxUpload int64, logger *logger.Logger) *Music {
	return &Music{service: service, contextManager: contextManager, maxUpload: maxUpload, logger: logger}
}

// Create handles POST / with multipart fields name, description, image, audio and tags.
func (h *Music) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}

	limitBody(w, r, 2*h.maxUpload+multipartMemory)
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
	audio, err := formFile(r, "audio")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	defer closeFile(audio)

	view, err := h.service.Create(r.Context(), actor, model.CreateTrackParams{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Image:       image,
		Audio:       audio,
		Tags:        formList(r, "tags"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Location", "/api/v1/music/"+view.ID.String())
	response.JSON(w, http.StatusCreated, newTrackResponse(view))
}

func (h *Music) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	views, err := h.service.List(r.Context(), actor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newTrackResponses(views))
}

func (h *Music) Get(w http.ResponseWriter, r *http.Request) {
	h.withTrack(w, r, h.service.Get)
}

// Update handles PUT /{id}. Only the fields present in the form are changed.
func (h *Music) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	limitBody(w, r, 2*h.maxUpload+multipartMemory)
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
	audio, err := formFile(r, "audio")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	defer closeFile(audio)

	view, err := h.service.Update(r.Context(), actor, id, model.UpdateTrackParams{
		Name:        formValue(r, "name"),
		Description: formValue(r, "description"),
		Image:       image,
		Audio:       audio,
		Tags:        formList(r, "tags"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newTrackResponse(view))
}

func (h *Music) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.Text(w, http.StatusOK, "Song has been deleted!")
}

func (h *Music) DeleteAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteAll(r.Context(), actor); err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.Text(w, http.StatusOK, "All uploaded songs has been deleted!")
}

func (h *Music) ToggleLike(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if _, err := h.service.ToggleLike(r.Context(), actor, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.Text(w, http.StatusOK, "Assesment has been provided!")
}

// FindByTags handles POST /find with a JSON array of tag names.
func (h *Music) FindByTags(w http.ResponseWriter, r *http.Request) {
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
	views, err := h.service.FindByTags(r.Context(), actor, names)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newTrackResponses(views))
}

func (h *Music) Feed(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	views, err := h.service.Feed(r.Context(), actor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newTrackResponses(views))
}

func (h *Music) Save(w http.ResponseWriter, r *http.Request) {
	h.withTrack(w, r, h.service.Save)
}

// withTrack runs fn for the track named in the path and writes the result.
func (h *Music) withTrack(w http.ResponseWriter, r *http.Request, fn func(context.Context, model.User, uuid.UUID) (model.TrackView, error)) {
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
	response.JSON(w, http.StatusOK, newTrackResponse(view))
}
