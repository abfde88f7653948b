package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/praxisdesk/availability/internal/shared/domain"
)

// Publisher delivers serialized domain events to a message broker.
type Publisher interface {
	// Publish sends a message under the given routing key.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// PublishDomainEvents serializes and publishes a batch of domain events.
// Publish failures are logged, not returned: event delivery is advisory and
// must never fail the mutation that produced the events.
func PublishDomainEvents(ctx context.Context, pub Publisher, logger *slog.Logger, events []domain.DomainEvent) {
	if pub == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			logger.Error("failed to marshal domain event",
				"routing_key", event.RoutingKey(),
				"error", err,
			)
			continue
		}
		if err := pub.Publish(ctx, event.RoutingKey(), payload); err != nil {
			logger.Warn("failed to publish domain event",
				"routing_key", event.RoutingKey(),
				"event_id", event.EventID(),
				"error", err,
			)
		}
	}
}

// NoopPublisher drops all events. Used in tests and when no broker is
// configured.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

// Publish logs the message at debug level without delivering it.
func (p *NoopPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.logger.Debug("noop publish",
		"routing_key", routingKey,
		"size", len(payload),
	)
	return nil
}

// Close is a no-op.
func (p *NoopPublisher) Close() error {
	return nil
}
