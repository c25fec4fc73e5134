package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// eventSink publishes domain events without failing the calling operation.
type eventSink struct {
	publisher model.EventPublisher
	logger    *logger.Logger
}

func (s eventSink) emit(ctx context.Context, eventType model.EventType, userID, subjectID uuid.UUID, attrs map[string]string) {
	if s.publisher == nil {
		return
	}

	event := model.Event{
		Type:       eventType,
		UserID:     userID,
		SubjectID:  subjectID,
		Attributes: attrs,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event",
			"type", string(eventType),
			"user_id", userID.String(),
			"error", err.Error())
	}
}
