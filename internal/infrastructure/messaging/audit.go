package messaging

import (
	"context"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
	"github.com/classpulse/classpulse-core/pkg/logger"
)

// AuditSubscriber logs every domain event as a structured audit record.
// It subscribes catch-all and never fails, so it is safe to keep attached
// in any environment.
type AuditSubscriber struct {
	logger *logger.Logger
}

// compile-time interface check
var _ shared.EventHandler = (*AuditSubscriber)(nil)

// NewAuditSubscriber creates a new audit subscriber.
func NewAuditSubscriber(log *logger.Logger) *AuditSubscriber {
	if log == nil {
		log = logger.Default()
	}
	return &AuditSubscriber{logger: log}
}

// Handle implements shared.EventHandler.
func (s *AuditSubscriber) Handle(_ context.Context, event shared.Event) error {
	s.logger.Info("domain event",
		logger.String("event_type", string(event.EventType())),
		logger.String("aggregate_id", event.AggregateID()),
		logger.Time("occurred_at", event.OccurredAt()),
		logger.Any("payload", event.Payload()),
	)
	return nil
}

// Name implements shared.EventHandler.
func (s *AuditSubscriber) Name() string {
	return "audit"
}
