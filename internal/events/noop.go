// Package events contains EventPublisher implementations.
package events

import (
	"context"

	"github.com/dtroode/listenloud-server/internal/model"
)

var _ model.EventPublisher = Noop{}

// Noop drops every event. It is used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, model.Event) error {
	return nil
}
