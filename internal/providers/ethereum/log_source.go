package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/feral-file/kuronje-indexer/internal/adapter"
	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/logger"
	"github.com/feral-file/kuronje-indexer/internal/messaging"
)

const (
	DEFAULT_BACKFILL_STEP_SIZE     = 10_000
	DEFAULT_BLOCK_TIME_CACHE_SIZE  = 4096
	DEFAULT_BLOCK_FETCH_WORKERS    = 8
	DEFAULT_SUBSCRIPTION_BUFFER    = 1024
	DEFAULT_BACKFILL_QUERY_TIMEOUT = time.Minute
)

// Config holds the configuration of the ethereum log source
type Config struct {
	WebSocketURL       string       // WebSocket URL (e.g., wss://mainnet.infura.io/ws/v3/YOUR_PROJECT_ID)
	ChainID            domain.Chain // e.g., "eip155:1" for Ethereum mainnet
	ContractAddress    string
	BackfillStepSize   uint64
	BlockTimeCacheSize int
	BlockFetchWorkers  int
	SubscriptionBuffer int
}

type logSource struct {
	client     adapter.EthClient
	chainID    domain.Chain
	contract   common.Address
	topics     []common.Hash
	stepSize   uint64
	workers    int
	buffer     int
	blockTimes *lru.Cache[uint64, time.Time]
}

// NewLogSource creates a log source that streams the collection contract logs matching the decoder topics
func NewLogSource(cfg Config, client adapter.EthClient, decoder Decoder) (messaging.LogSource, error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address: %q", cfg.ContractAddress)
	}

	stepSize := cfg.BackfillStepSize
	if stepSize == 0 {
		stepSize = DEFAULT_BACKFILL_STEP_SIZE
	}
	cacheSize := cfg.BlockTimeCacheSize
	if cacheSize <= 0 {
		cacheSize = DEFAULT_BLOCK_TIME_CACHE_SIZE
	}
	workers := cfg.BlockFetchWorkers
	if workers <= 0 {
		workers = DEFAULT_BLOCK_FETCH_WORKERS
	}
	buffer := cfg.SubscriptionBuffer
	if buffer <= 0 {
		buffer = DEFAULT_SUBSCRIPTION_BUFFER
	}

	blockTimes, err := lru.New[uint64, time.Time](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create block time cache: %w", err)
	}

	return &logSource{
		client:     client,
		chainID:    cfg.ChainID,
		contract:   common.HexToAddress(cfg.ContractAddress),
		topics:     decoder.Topics(),
		stepSize:   stepSize,
		workers:    workers,
		buffer:     buffer,
		blockTimes: blockTimes,
	}, nil
}

// Stream subscribes to live logs first, backfills history up to the head at subscription time,
// then forwards live logs. Logs already delivered by the backfill are dropped from the live feed.
func (s *logSource) Stream(ctx context.Context, fromBlock uint64, handler messaging.LogHandler) error {
	pool := pond.NewPool(s.workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	live := make(chan types.Log, s.buffer)
	sub, err := s.client.SubscribeFilterLogs(ctx, s.query(nil, nil), live)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSubscriptionFailed, err)
	}
	defer func() {
		logger.InfoCtx(ctx, "Unsubscribing from ethereum contract logs")
		sub.Unsubscribe()
	}()

	head, err := s.client.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest block: %w", err)
	}

	// next is the smallest position that has not been delivered yet
	next := domain.Position{BlockNumber: fromBlock}

	if fromBlock <= head {
		logger.InfoCtx(ctx, "Backfilling contract logs",
			zap.String("chain", string(s.chainID)),
			zap.Uint64("fromBlock", fromBlock),
			zap.Uint64("toBlock", head))

		next, err = s.backfill(ctx, pool, fromBlock, head, handler)
		if err != nil {
			return err
		}

		logger.InfoCtx(ctx, "Backfill complete, following live logs",
			zap.String("chain", string(s.chainID)),
			zap.Stringer("next", next))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			if err == nil {
				return fmt.Errorf("%w: subscription closed", domain.ErrSubscriptionFailed)
			}
			return fmt.Errorf("%w: %v", domain.ErrSubscriptionFailed, err)
		case vLog := <-live:
			pos := domain.Position{BlockNumber: vLog.BlockNumber, LogIndex: vLog.Index}

			if vLog.Removed {
				// Re-mined logs of this block must be delivered again
				blockStart := domain.Position{BlockNumber: vLog.BlockNumber}
				if next.After(blockStart) {
					next = blockStart
				}
				if err := handler(ctx, toRawLog(vLog, time.Time{})); err != nil {
					return err
				}
				continue
			}

			if pos.Compare(next) < 0 {
				continue
			}

			blockTime, err := s.blockTime(ctx, vLog.BlockNumber)
			if err != nil {
				return err
			}
			if err := handler(ctx, toRawLog(vLog, blockTime)); err != nil {
				return err
			}
			next = domain.Position{BlockNumber: pos.BlockNumber, LogIndex: pos.LogIndex + 1}
		}
	}
}

// backfill delivers historical logs in [fromBlock, toBlock] one range at a time and returns
// the next undelivered position
func (s *logSource) backfill(ctx context.Context, pool pond.Pool, fromBlock, toBlock uint64, handler messaging.LogHandler) (domain.Position, error) {
	next := domain.Position{BlockNumber: fromBlock}

	for rangeFrom := fromBlock; rangeFrom <= toBlock; {
		rangeTo := rangeFrom + s.stepSize - 1
		if rangeTo > toBlock || rangeTo < rangeFrom {
			rangeTo = toBlock
		}

		logs, err := s.getLogsWithRetry(ctx, rangeFrom, rangeTo)
		if err != nil {
			return next, fmt.Errorf("failed to get logs for range %d-%d: %w", rangeFrom, rangeTo, err)
		}

		sortLogs(logs)

		if err := s.prefetchBlockTimes(ctx, pool, logs); err != nil {
			return next, err
		}

		for _, vLog := range logs {
			if vLog.Removed {
				continue
			}
			pos := domain.Position{BlockNumber: vLog.BlockNumber, LogIndex: vLog.Index}
			if pos.Compare(next) < 0 {
				continue
			}

			blockTime, err := s.blockTime(ctx, vLog.BlockNumber)
			if err != nil {
				return next, err
			}
			if err := handler(ctx, toRawLog(vLog, blockTime)); err != nil {
				return next, err
			}
			next = domain.Position{BlockNumber: pos.BlockNumber, LogIndex: pos.LogIndex + 1}
		}

		if rangeTo == toBlock {
			break
		}
		rangeFrom = rangeTo + 1
	}

	// Every log up to toBlock came from history; live logs take over after it
	return domain.Position{BlockNumber: toBlock + 1}, nil
}

// getLogsWithRetry fetches logs in [fromBlock, toBlock], halving the chunk size whenever
// the provider rejects a query for returning too many results
func (s *logSource) getLogsWithRetry(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error) {
	currentStepSize := toBlock - fromBlock + 1

	var allLogs []types.Log
	currentFrom := fromBlock

	for currentFrom <= toBlock {
		currentTo := currentFrom + currentStepSize - 1
		if currentTo > toBlock {
			currentTo = toBlock
		}

		queryCtx, cancel := context.WithTimeout(ctx, DEFAULT_BACKFILL_QUERY_TIMEOUT)
		logs, err := s.client.FilterLogs(queryCtx, s.query(
			new(big.Int).SetUint64(currentFrom),
			new(big.Int).SetUint64(currentTo)))
		cancel()

		if err == nil {
			allLogs = append(allLogs, logs...)
			currentFrom = currentTo + 1
			continue
		}

		if !isTooManyResultsError(err) || currentStepSize == 1 {
			return nil, err
		}

		currentStepSize = currentStepSize / 2

		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("oldStepSize", currentStepSize*2),
			zap.Uint64("newStepSize", currentStepSize),
			zap.Uint64("fromBlock", currentFrom),
			zap.Uint64("toBlock", currentTo))
	}

	return allLogs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum") ||
		strings.Contains(errStr, "block range")
}

// prefetchBlockTimes loads the timestamps of every block in logs concurrently
func (s *logSource) prefetchBlockTimes(ctx context.Context, pool pond.Pool, logs []types.Log) error {
	seen := make(map[uint64]struct{})
	group := pool.NewGroup()

	for _, vLog := range logs {
		number := vLog.BlockNumber
		if _, ok := seen[number]; ok {
			continue
		}
		seen[number] = struct{}{}
		if s.blockTimes.Contains(number) {
			continue
		}

		group.SubmitErr(func() error {
			_, err := s.blockTime(ctx, number)
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("failed to prefetch block times: %w", err)
	}
	return nil
}

// blockTime returns the timestamp of a block, from cache when possible
func (s *logSource) blockTime(ctx context.Context, number uint64) (time.Time, error) {
	if t, ok := s.blockTimes.Get(number); ok {
		return t, nil
	}

	header, err := s.client.HeaderByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get header of block %d: %w", number, err)
	}

	t := time.Unix(int64(header.Time), 0).UTC()
	s.blockTimes.Add(number, t)
	return t, nil
}

func (s *logSource) query(fromBlock, toBlock *big.Int) ethereum.FilterQuery {
	return ethereum.FilterQuery{
		FromBlock: fromBlock,
		ToBlock:   toBlock,
		Addresses: []common.Address{s.contract},
		Topics:    [][]common.Hash{s.topics},
	}
}

// LatestBlock returns the latest block number
func (s *logSource) LatestBlock(ctx context.Context) (uint64, error) {
	number, err := s.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return number, nil
}

// Close closes the connection
func (s *logSource) Close() {
	if s.client == nil {
		return
	}

	s.client.Close()
	logger.Info("Ethereum WebSocket connection closed")
}

func sortLogs(logs []types.Log) {
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})
}

func toRawLog(vLog types.Log, blockTime time.Time) domain.RawLog {
	return domain.RawLog{
		Address:     vLog.Address,
		Topics:      vLog.Topics,
		Data:        vLog.Data,
		BlockNumber: vLog.BlockNumber,
		BlockHash:   vLog.BlockHash,
		TxHash:      vLog.TxHash,
		LogIndex:    vLog.Index,
		BlockTime:   blockTime,
		Removed:     vLog.Removed,
	}
}
