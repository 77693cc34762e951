package jetstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/kuronje-indexer/internal/adapter"
	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/logger"
	"github.com/feral-file/kuronje-indexer/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	Collection     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// DuplicateWindow is the JetStream de-duplication window for message ids
	DuplicateWindow time.Duration
}

// Message is the payload published for every applied event
type Message struct {
	Kind       domain.EventKind `json:"kind"`
	Collection string           `json:"collection"`
	Event      domain.Event     `json:"event"`
}

type publisher struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	collection string
}

// NewPublisher connects to NATS and makes sure the events stream exists
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	err = js.EnsureStream(ctx, jetstream.StreamConfig{
		Name:       cfg.StreamName,
		Subjects:   []string{fmt.Sprintf("events.%s.>", cfg.Collection)},
		Duplicates: cfg.DuplicateWindow,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	logger.InfoCtx(ctx, "Connected to NATS",
		zap.String("url", nc.ConnectedUrl()),
		zap.String("stream", cfg.StreamName))

	return &publisher{
		nc:         nc,
		js:         js,
		collection: cfg.Collection,
	}, nil
}

// PublishEvent publishes an applied event, using the event id as the JetStream message id
// so redeliveries within the duplicate window are dropped by the server
func (p *publisher) PublishEvent(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(Message{
		Kind:       event.Kind(),
		Collection: p.collection,
		Event:      event,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := p.buildSubject(event)
	logger.DebugCtx(ctx, "Publishing NATS event",
		zap.String("subject", subject),
		zap.String("id", event.Meta().ID))

	_, err = p.js.Publish(ctx, subject, data, jetstream.WithMsgID(event.Meta().ID))
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// buildSubject constructs the NATS subject, e.g. events.kuronje.transfer
func (p *publisher) buildSubject(event domain.Event) string {
	return fmt.Sprintf("events.%s.%s", p.collection, event.Kind())
}

// Close drains pending publishes and closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	if err := p.nc.Drain(); err != nil {
		logger.Warn("Failed to drain NATS connection", zap.Error(err))
		p.nc.Close()
	}
}
