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

// Message handles direct messages between users.
type Message struct {
	messages model.MessageStore
	users    model.UserStore
	media    *Media
	events   eventSink
	logger   *logger.Logger
	now      func() time.Time
}

func NewMessage(
	messages model.MessageStore,
	users model.UserStore,
	media *Media,
	publisher model.EventPublisher,
	logger *logger.Logger,
) *Message {
	return &Message{
		messages: messages,
		users:    users,
		media:    media,
		events:   eventSink{publisher: publisher, logger: logger},
		logger:   logger,
		now:      time.Now,
	}
}

// Send delivers content from actor to the recipient.
func (s *Message) Send(ctx context.Context, actor model.User, recipientID uuid.UUID, content string) (model.MessageView, error) {
	if strings.TrimSpace(content) == "" {
		return model.MessageView{}, fmt.Errorf("%w: content is required", model.ErrInvalidArgument)
	}
	if recipientID == actor.ID {
		return model.MessageView{}, fmt.Errorf("%w: cannot send message to yourself", model.ErrInvalidArgument)
	}

	if _, err := s.partner(ctx, recipientID); err != nil {
		return model.MessageView{}, err
	}

	msg, err := s.messages.Create(ctx, model.Message{
		ID:          uuid.New(),
		SenderID:    actor.ID,
		RecipientID: recipientID,
		Content:     content,
		SentAt:      s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("Message service: failed to create message",
			"sender_id", actor.ID.String(),
			"recipient_id", recipientID.String(),
			"error", err.Error())
		return model.MessageView{}, fmt.Errorf("failed to create message: %w", err)
	}

	s.events.emit(ctx, model.EventMessageSent, actor.ID, msg.ID, map[string]string{"recipient_id": recipientID.String()})

	return s.view(ctx, msg)
}

// Dialogues returns the newest message of every conversation of actor.
func (s *Message) Dialogues(ctx context.Context, actor model.User) ([]model.MessageView, error) {
	msgs, err := s.messages.ListLatest(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dialogues: %w", err)
	}
	return s.views(ctx, msgs)
}

// Conversation returns the messages exchanged with partner, oldest first,
// and marks the ones received by actor as read.
func (s *Message) Conversation(ctx context.Context, actor model.User, partnerID uuid.UUID) ([]model.MessageView, error) {
	if _, err := s.partner(ctx, partnerID); err != nil {
		return nil, err
	}

	if err := s.messages.MarkRead(ctx, actor.ID, partnerID); err != nil {
		return nil, fmt.Errorf("failed to mark messages read: %w", err)
	}

	msgs, err := s.messages.ListConversation(ctx, actor.ID, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	return s.views(ctx, msgs)
}

func (s *Message) DeleteConversation(ctx context.Context, actor model.User, partnerID uuid.UUID) error {
	if _, err := s.partner(ctx, partnerID); err != nil {
		return err
	}
	if err := s.messages.DeleteConversation(ctx, actor.ID, partnerID); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// Delete removes a single message sent by actor to partner.
func (s *Message) Delete(ctx context.Context, actor model.User, partnerID, messageID uuid.UUID) error {
	if _, err := s.own(ctx, actor, partnerID, messageID); err != nil {
		return err
	}
	return s.messages.Delete(ctx, messageID)
}

// Edit replaces the content of a message sent by actor. The message is
// re-stamped with the edit time.
func (s *Message) Edit(ctx context.Context, actor model.User, partnerID, messageID uuid.UUID, content string) (model.MessageView, error) {
	if strings.TrimSpace(content) == "" {
		return model.MessageView{}, fmt.Errorf("%w: content is required", model.ErrInvalidArgument)
	}
	if _, err := s.own(ctx, actor, partnerID, messageID); err != nil {
		return model.MessageView{}, err
	}

	msg, err := s.messages.UpdateContent(ctx, messageID, content, s.now().UTC())
	if err != nil {
		return model.MessageView{}, err
	}
	return s.view(ctx, msg)
}

// own loads a message of the actor/partner conversation and checks that
// actor sent it.
func (s *Message) own(ctx context.Context, actor model.User, partnerID, messageID uuid.UUID) (model.Message, error) {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return model.Message{}, err
	}

	inConversation := (msg.SenderID == actor.ID && msg.RecipientID == partnerID) ||
		(msg.SenderID == partnerID && msg.RecipientID == actor.ID)
	if !inConversation {
		return model.Message{}, model.ErrNotFound
	}
	if msg.SenderID != actor.ID {
		return model.Message{}, model.ErrForbidden
	}
	return msg, nil
}

func (s *Message) partner(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (s *Message) view(ctx context.Context, msg model.Message) (model.MessageView, error) {
	views, err := s.views(ctx, []model.Message{msg})
	if err != nil {
		return model.MessageView{}, err
	}
	return views[0], nil
}

func (s *Message) views(ctx context.Context, msgs []model.Message) ([]model.MessageView, error) {
	if len(msgs) == 0 {
		return []model.MessageView{}, nil
	}

	ids := make([]uuid.UUID, 0, 2*len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.SenderID, m.RecipientID)
	}
	users, err := usersByID(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}

	views := make([]model.MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, model.MessageView{
			Message:   m,
			Sender:    userView(s.media, users[m.SenderID], nil),
			Recipient: userView(s.media, users[m.RecipientID], nil),
		})
	}
	return views, nil
}
