package messaging

import (
	"context"

	"github.com/feral-file/kuronje-indexer/internal/domain"
)

// LogHandler is called synchronously for every log delivered by a LogSource.
// Returning an error stops the stream.
type LogHandler func(ctx context.Context, log domain.RawLog) error

// LogSource delivers contract logs ordered by (block number, log index), at least once
//
//go:generate mockgen -source=log_source.go -destination=../mocks/log_source.go -package=mocks -mock_names=LogSource=MockLogSource
type LogSource interface {
	// Stream delivers logs starting at fromBlock, first from history and then live,
	// until ctx is cancelled or the handler returns an error
	Stream(ctx context.Context, fromBlock uint64, handler LogHandler) error

	// LatestBlock returns the current chain head
	LatestBlock(ctx context.Context) (uint64, error)

	// Close releases the underlying connection
	Close()
}
