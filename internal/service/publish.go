package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/park-api/internal/events"
)

// publish emits event when a dispatcher is configured. Handler failures are
// logged; they never fail the operation that produced the event.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
