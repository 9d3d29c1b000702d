package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/park-api/internal/events"
	"github.com/spec-kit/park-api/internal/observability"
)

// AuditService writes an audit line for every account and customer event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     observability.OrNop(logger).Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserAuthenticated, a.record)
	a.dispatcher.Subscribe(events.EventAuthenticationFailed, a.handleAuthenticationFailed)
	a.dispatcher.Subscribe(events.EventUserRegistered, a.record)
	a.dispatcher.Subscribe(events.EventPasswordChanged, a.record)
	a.dispatcher.Subscribe(events.EventCustomerCreated, a.record)
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), auditFields(event)...)
	return nil
}

func (a *AuditService) handleAuthenticationFailed(_ context.Context, event events.Event) error {
	a.logger.Warn(string(event.Type), auditFields(event)...)
	return nil
}

func auditFields(event events.Event) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("username", event.Actor.Username),
		zap.Time("at", event.Timestamp),
	}
	if event.Actor.AccountID != 0 {
		fields = append(fields, zap.Int64("account_id", event.Actor.AccountID))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}
	return fields
}
