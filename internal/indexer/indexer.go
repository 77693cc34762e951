package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/kuronje-indexer/internal/adapter"
	"github.com/feral-file/kuronje-indexer/internal/block"
	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/logger"
	"github.com/feral-file/kuronje-indexer/internal/messaging"
	"github.com/feral-file/kuronje-indexer/internal/metrics"
	"github.com/feral-file/kuronje-indexer/internal/projection"
	"github.com/feral-file/kuronje-indexer/internal/providers/ethereum"
	"github.com/feral-file/kuronje-indexer/internal/store"
)

const (
	DEFAULT_RETRY_INITIAL_INTERVAL = time.Second
	DEFAULT_RETRY_MAX_INTERVAL     = 30 * time.Second
	DEFAULT_RETRY_MAX_ELAPSED_TIME = 5 * time.Minute
)

// Config holds the configuration for the indexer
type Config struct {
	ChainID         domain.Chain
	ContractAddress string
	// StartBlock is used when no cursor has been stored yet, typically the contract deployment block
	StartBlock           uint64
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMaxElapsedTime  time.Duration
}

// Indexer drives the projection from a contract log stream
type Indexer interface {
	// Run streams logs from the stored cursor and applies them until ctx is cancelled or a
	// permanent failure occurs
	Run(ctx context.Context) error
	// Close closes the log source and the publisher
	Close()
}

type indexer struct {
	source    messaging.LogSource
	decoder   ethereum.Decoder
	engine    projection.Engine
	reader    store.Reader
	publisher messaging.Publisher
	config    Config
	clock     adapter.Clock
	head      block.HeadProvider
	cursorKey string

	// cursor mirrors the committed projection cursor
	cursor *domain.Position
}

// NewIndexer creates a new indexer
func NewIndexer(
	source messaging.LogSource,
	decoder ethereum.Decoder,
	engine projection.Engine,
	reader store.Reader,
	publisher messaging.Publisher,
	cfg Config,
	clock adapter.Clock,
) Indexer {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	if cfg.RetryInitialInterval == 0 {
		cfg.RetryInitialInterval = DEFAULT_RETRY_INITIAL_INTERVAL
	}
	if cfg.RetryMaxInterval == 0 {
		cfg.RetryMaxInterval = DEFAULT_RETRY_MAX_INTERVAL
	}
	if cfg.RetryMaxElapsedTime == 0 {
		cfg.RetryMaxElapsedTime = DEFAULT_RETRY_MAX_ELAPSED_TIME
	}

	return &indexer{
		source:    source,
		decoder:   decoder,
		engine:    engine,
		reader:    reader,
		publisher: publisher,
		config:    cfg,
		clock:     clock,
		head:      block.NewHeadProvider(source, block.Config{}, clock),
		cursorKey: domain.CursorKey(cfg.ChainID, cfg.ContractAddress),
	}
}

// Run starts the ingestion loop
func (i *indexer) Run(ctx context.Context) error {
	cursor, err := i.reader.GetCursor(ctx, i.cursorKey)
	if err != nil {
		return fmt.Errorf("failed to get projection cursor: %w", err)
	}
	i.cursor = cursor

	head, err := i.head.GetLatestBlock(ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest block number: %w", err)
	}
	metrics.ChainHead.Set(float64(head))

	// The cursor block is streamed again; logs at or before the cursor are skipped
	fromBlock := i.config.StartBlock
	if cursor != nil {
		fromBlock = cursor.BlockNumber
		metrics.CursorBlock.Set(float64(cursor.BlockNumber))
		logger.InfoCtx(ctx, "Resuming from projection cursor",
			zap.String("chain", string(i.config.ChainID)),
			zap.Stringer("cursor", cursor),
			zap.Uint64("head", head))
	} else {
		logger.InfoCtx(ctx, "Starting from configured block",
			zap.String("chain", string(i.config.ChainID)),
			zap.Uint64("block", fromBlock),
			zap.Uint64("head", head))
	}

	err = i.source.Stream(ctx, fromBlock, i.handleLog)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("log stream stopped: %w", err)
	}
	return err
}

// handleLog processes a single delivered log. A returned error stops the stream.
func (i *indexer) handleLog(ctx context.Context, raw domain.RawLog) error {
	metrics.LogsReceived.Inc()

	if raw.Removed {
		return i.rewind(ctx, raw)
	}

	pos := raw.Position()
	if i.cursor != nil && !pos.After(*i.cursor) {
		metrics.EventsProcessed.WithLabelValues("", metrics.OutcomeStale).Inc()
		logger.DebugCtx(ctx, "Skipping log at or before cursor",
			zap.Stringer("position", pos),
			zap.Stringer("cursor", i.cursor))
		return nil
	}

	event, err := i.decoder.Decode(raw)
	if err != nil {
		if errors.Is(err, domain.ErrUnrecognizedEvent) {
			metrics.EventsProcessed.WithLabelValues("", metrics.OutcomeUnrecognized).Inc()
			logger.WarnCtx(ctx, "Skipping unrecognized log",
				zap.Error(err),
				zap.String("id", raw.EventID()),
				zap.Stringer("position", pos))
			return nil
		}

		metrics.EventsProcessed.WithLabelValues("", metrics.OutcomeFailed).Inc()
		logger.ErrorCtx(ctx, err, zap.String("id", raw.EventID()), zap.Stringer("position", pos))
		return err
	}

	kind := string(event.Kind())
	start := i.clock.Now()

	result, err := i.applyWithRetry(ctx, event)
	if err != nil {
		metrics.EventsProcessed.WithLabelValues(kind, metrics.OutcomeFailed).Inc()
		logger.ErrorCtx(ctx, err,
			zap.String("kind", kind),
			zap.String("id", event.Meta().ID),
			zap.Stringer("position", pos))
		return err
	}
	metrics.ApplyDuration.Observe(i.clock.Since(start).Seconds())

	if result.CursorAdvanced {
		i.cursor = &pos
		metrics.CursorBlock.Set(float64(pos.BlockNumber))
		i.observeHead(ctx, pos.BlockNumber)
	}

	switch {
	case result.Duplicate:
		metrics.EventsProcessed.WithLabelValues(kind, metrics.OutcomeDuplicate).Inc()
	case result.Skipped:
		metrics.EventsProcessed.WithLabelValues(kind, metrics.OutcomeSkipped).Inc()
	case result.Applied:
		metrics.EventsProcessed.WithLabelValues(kind, metrics.OutcomeApplied).Inc()
		i.publish(ctx, event)
	}

	return nil
}

// rewind undoes the projection from the start of a reorganised block, if it was already applied
func (i *indexer) rewind(ctx context.Context, raw domain.RawLog) error {
	blockStart := domain.Position{BlockNumber: raw.BlockNumber}
	if i.cursor == nil || blockStart.After(*i.cursor) {
		logger.DebugCtx(ctx, "Ignoring removed log beyond cursor",
			zap.String("id", raw.EventID()),
			zap.Stringer("position", raw.Position()))
		return nil
	}

	logger.WarnCtx(ctx, "Chain reorganisation detected, rewinding projection",
		zap.String("id", raw.EventID()),
		zap.Uint64("block", raw.BlockNumber),
		zap.Stringer("cursor", i.cursor))

	cursor, err := i.engine.Rewind(ctx, blockStart)
	if err != nil {
		return err
	}

	metrics.Rewinds.Inc()
	i.cursor = cursor
	if cursor != nil {
		metrics.CursorBlock.Set(float64(cursor.BlockNumber))
	} else {
		metrics.CursorBlock.Set(0)
	}
	return nil
}

// applyWithRetry applies an event, retrying transient failures with exponential backoff.
// Invariant violations are permanent and returned immediately.
func (i *indexer) applyWithRetry(ctx context.Context, event domain.Event) (projection.Result, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = i.config.RetryInitialInterval
	b.MaxInterval = i.config.RetryMaxInterval
	b.MaxElapsedTime = i.config.RetryMaxElapsedTime
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	backoffWithContext := backoff.WithContext(b, ctx)

	var result projection.Result
	operation := func() error {
		var err error
		result, err = i.engine.Apply(ctx, event)
		if err == nil {
			return nil
		}
		if isPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		metrics.ApplyRetries.Inc()
		logger.WarnCtx(ctx, "Apply failed, retrying",
			zap.Error(err),
			zap.String("id", event.Meta().ID),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration))
	}

	if err := backoff.RetryNotify(operation, backoffWithContext, notifyOnError); err != nil {
		if attemptCount > 0 {
			return projection.Result{}, fmt.Errorf("failed after %d attempts: %w", attemptCount+1, err)
		}
		return projection.Result{}, err
	}

	if attemptCount > 0 {
		logger.InfoCtx(ctx, "Apply succeeded after retries",
			zap.String("id", event.Meta().ID),
			zap.Int("total_attempts", attemptCount+1))
	}

	return result, nil
}

// observeHead refreshes the chain head and lag gauges from the cached head
func (i *indexer) observeHead(ctx context.Context, cursorBlock uint64) {
	head, err := i.head.GetLatestBlock(ctx)
	if err != nil {
		logger.DebugCtx(ctx, "Failed to refresh chain head", zap.Error(err))
		return
	}

	metrics.ChainHead.Set(float64(head))
	if head > cursorBlock {
		metrics.BlocksBehind.Set(float64(head - cursorBlock))
	} else {
		metrics.BlocksBehind.Set(0)
	}
}

// publish notifies downstream consumers. Failures are logged, never fatal.
func (i *indexer) publish(ctx context.Context, event domain.Event) {
	if err := i.publisher.PublishEvent(ctx, event); err != nil {
		metrics.PublishFailures.Inc()
		logger.WarnCtx(ctx, "Failed to publish applied event",
			zap.Error(err),
			zap.String("id", event.Meta().ID))
	}
}

func isPermanent(err error) bool {
	return errors.Is(err, domain.ErrInvariantViolation) ||
		errors.Is(err, domain.ErrMalformedEvent) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Close closes the indexer and cleans up resources
func (i *indexer) Close() {
	i.source.Close()
	i.publisher.Close()
}
