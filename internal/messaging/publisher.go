package messaging

import (
	"context"

	"github.com/feral-file/kuronje-indexer/internal/domain"
)

// Publisher notifies downstream consumers about events that were applied to the projection
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes an applied event to the message broker
	PublishEvent(ctx context.Context, event domain.Event) error
	// Close closes the connection
	Close()
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(context.Context, domain.Event) error { return nil }

func (NopPublisher) Close() {}
