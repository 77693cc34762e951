package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/kuronje-indexer/internal/adapter"
	"github.com/feral-file/kuronje-indexer/internal/logger"
)

const (
	DEFAULT_HEAD_TTL          = 15 * time.Second
	DEFAULT_HEAD_STALE_WINDOW = 2 * time.Minute
)

// Head is a cached chain head
type Head struct {
	Number    uint64
	FetchedAt time.Time
}

// HeadProvider provides cached access to the latest block number so the
// ingestion loop can report its lag without an RPC round trip per log
//
//go:generate mockgen -source=head.go -destination=../mocks/head.go -package=mocks -mock_names=HeadProvider=MockHeadProvider,HeadFetcher=MockHeadFetcher
type HeadProvider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)
}

// HeadFetcher fetches the latest block number from the chain. A log source satisfies it.
type HeadFetcher interface {
	LatestBlock(ctx context.Context) (uint64, error)
}

// Config holds configuration for the HeadProvider
type Config struct {
	// TTL is how long to cache the block number
	TTL time.Duration

	// StaleWindow is how long to use stale data if fetching fails
	StaleWindow time.Duration
}

// headProvider implements HeadProvider with TTL-based caching
type headProvider struct {
	fetcher HeadFetcher
	config  Config
	clock   adapter.Clock

	mu   sync.RWMutex
	head *Head
}

// NewHeadProvider creates a new HeadProvider with caching
func NewHeadProvider(fetcher HeadFetcher, config Config, clock adapter.Clock) HeadProvider {
	if config.TTL <= 0 {
		config.TTL = DEFAULT_HEAD_TTL
	}
	if config.StaleWindow < config.TTL {
		config.StaleWindow = DEFAULT_HEAD_STALE_WINDOW
	}

	return &headProvider{
		fetcher: fetcher,
		config:  config,
		clock:   clock,
	}
}

// GetLatestBlock returns the latest block number, using cache if valid
func (p *headProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.FetchedAt) < p.config.TTL {
		return cached.Number, nil
	}

	number, err := p.fetcher.LatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.FetchedAt) < p.config.StaleWindow {
			logger.DebugCtx(ctx, "Using stale chain head", zap.Uint64("block_number", cached.Number), zap.Error(err))
			return cached.Number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	// The cached head never moves backwards
	if p.head == nil || number >= p.head.Number {
		p.head = &Head{Number: number, FetchedAt: now}
	} else {
		p.head = &Head{Number: p.head.Number, FetchedAt: now}
		number = p.head.Number
	}
	p.mu.Unlock()

	return number, nil
}
