// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// publishEvent delivers a domain event through the publisher if one is
// configured. Event delivery failures never fail the mutation itself.
func publishEvent(ctx context.Context, publisher shared.EventPublisher, event shared.Event) {
	if publisher == nil {
		return
	}
	_ = publisher.Publish(ctx, event)
}
