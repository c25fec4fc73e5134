package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/api/http/response"
	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// MessageService is the direct message use-case consumed by Message.
type MessageService interface {
	Send(ctx context.Context, actor model.User, recipientID uuid.UUID, content string) (model.MessageView, error)
	Dialogues(ctx context.Context, actor model.User) ([]model.MessageView, error)
	Conversation(ctx context.Context, actor model.User, partnerID uuid.UUID) ([]model.MessageView, error)
	DeleteConversation(ctx context.Context, actor model.User, partnerID uuid.UUID) error
	Delete(ctx context.Context, actor model.User, partnerID, messageID uuid.UUID) error
	Edit(ctx context.Context, actor model.User, partnerID, messageID uuid.UUID, content string) (model.MessageView, error)
}

// Message serves /api/v1/messages.
type Message struct {
	service        MessageService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewMessage(service MessageService, contextManager model.ContextManager, logger *logger.Logger) *Message {
	return &Message{service: service, contextManager: contextManager, logger: logger}
}

type contentRequest struct {
	Content string `validate:"required,max=4096"`
}

// Send handles POST /send/{id} with form field content.
func (h *Message) Send(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	req, err := h.content(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	view, err := h.service.Send(r.Context(), actor, id, req.Content)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newMessageResponse(view))
}

func (h *Message) Dialogues(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	views, err := h.service.Dialogues(r.Context(), actor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newMessageResponses(views))
}

func (h *Message) Conversation(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	views, err := h.service.Conversation(r.Context(), actor, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newMessageResponses(views))
}

func (h *Message) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.service.DeleteConversation(r.Context(), actor, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.Text(w, http.StatusOK, "Dialogue was successfully deleted!")
}

func (h *Message) Delete(w http.ResponseWriter, r *http.Request) {
	actor, partnerID, messageID, ok := h.messagePath(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), actor, partnerID, messageID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.Text(w, http.StatusOK, "Message was successfully deleted!")
}

// Edit handles PUT /dialogues/{id}/{messageId} with form field content.
func (h *Message) Edit(w http.ResponseWriter, r *http.Request) {
	actor, partnerID, messageID, ok := h.messagePath(w, r)
	if !ok {
		return
	}
	req, err := h.content(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	view, err := h.service.Edit(r.Context(), actor, partnerID, messageID, req.Content)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newMessageResponse(view))
}

func (h *Message) content(r *http.Request) (contentRequest, error) {
	if err := parseForm(r); err != nil {
		return contentRequest{}, err
	}
	req := contentRequest{Content: r.PostFormValue("content")}
	if err := validate.Struct(req); err != nil {
		return contentRequest{}, err
	}
	return req, nil
}

func (h *Message) messagePath(w http.ResponseWriter, r *http.Request) (model.User, uuid.UUID, uuid.UUID, bool) {
	actor, ok := currentUser(h.contextManager, w, r)
	if !ok {
		return model.User{}, uuid.Nil, uuid.Nil, false
	}
	partnerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return model.User{}, uuid.Nil, uuid.Nil, false
	}
	messageID, err := pathID(r, "messageId")
	if err != nil {
		writeError(w, h.logger, err)
		return model.User{}, uuid.Nil, uuid.Nil, false
	}
	return actor, partnerID, messageID, true
}
