package block_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/kuronje-indexer/internal/block"
	"github.com/feral-file/kuronje-indexer/internal/logger"
	"github.com/feral-file/kuronje-indexer/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testHeadProviderMocks contains all the mocks needed for testing the head provider
type testHeadProviderMocks struct {
	ctrl     *gomock.Controller
	fetcher  *mocks.MockHeadFetcher
	clock    *mocks.MockClock
	provider block.HeadProvider
}

// setupTest creates all the mocks and head provider for testing
func setupTest(t *testing.T) *testHeadProviderMocks {
	ctrl := gomock.NewController(t)

	mockFetcher := mocks.NewMockHeadFetcher(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	provider := block.NewHeadProvider(mockFetcher, block.Config{
		TTL:         10 * time.Second,
		StaleWindow: 2 * time.Minute,
	}, mockClock)

	return &testHeadProviderMocks{
		ctrl:     ctrl,
		fetcher:  mockFetcher,
		clock:    mockClock,
		provider: provider,
	}
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestHeadProvider_FirstFetch(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()

	tm.clock.EXPECT().Now().Return(epoch)
	tm.fetcher.EXPECT().LatestBlock(ctx).Return(uint64(1000), nil)

	blockNum, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)
}

func TestHeadProvider_UsesCacheWithinTTL(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()

	tm.clock.EXPECT().Now().Return(epoch)
	tm.fetcher.EXPECT().LatestBlock(ctx).Return(uint64(1000), nil)
	_, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)

	// Fetcher is called only once
	tm.clock.EXPECT().Now().Return(epoch.Add(5 * time.Second))
	blockNum, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)
}

func TestHeadProvider_RefreshesAfterTTL(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()

	gomock.InOrder(
		tm.clock.EXPECT().Now().Return(epoch),
		tm.fetcher.EXPECT().LatestBlock(ctx).Return(uint64(1000), nil),
		tm.clock.EXPECT().Now().Return(epoch.Add(11*time.Second)),
		tm.fetcher.EXPECT().LatestBlock(ctx).Return(uint64(1001), nil),
	)

	_, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)

	blockNum, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1001), blockNum)
}

func TestHeadProvider_NeverMovesBackwards(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()

	gomock.InOrder(
		tm.clock.EXPECT().Now().Return(epoch),
		tm.fetcher.EXPECT().LatestBlock(ctx).Return(uint64(1000), nil),
		tm.clock.EXPECT().Now().Return(epoch.Add(11*time.Second)),
		tm.fetcher.EXPECT().LatestBlock(ctx).Return(uint64(998), nil),
		tm.clock.EXPECT().Now().Return(epoch.Add(12*time.Second)),
	)

	_, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)

	blockNum, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)

	// The lower answer still refreshed the cache
	blockNum, err = tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)
}

func TestHeadProvider_UsesStaleCacheOnError(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()

	gomock.InOrder(
		tm.clock.EXPECT().Now().Return(epoch),
		tm.fetcher.EXPECT().LatestBlock(ctx).Return(uint64(1000), nil),
		tm.clock.EXPECT().Now().Return(epoch.Add(time.Minute)),
		tm.fetcher.EXPECT().LatestBlock(ctx).Return(uint64(0), errors.New("rpc unavailable")),
	)

	_, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)

	blockNum, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)
}

func TestHeadProvider_FailsWhenStaleWindowExpired(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()
	fetchErr := errors.New("rpc unavailable")

	gomock.InOrder(
		tm.clock.EXPECT().Now().Return(epoch),
		tm.fetcher.EXPECT().LatestBlock(ctx).Return(uint64(1000), nil),
		tm.clock.EXPECT().Now().Return(epoch.Add(3*time.Minute)),
		tm.fetcher.EXPECT().LatestBlock(ctx).Return(uint64(0), fetchErr),
	)

	_, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)

	_, err = tm.provider.GetLatestBlock(ctx)
	assert.ErrorIs(t, err, fetchErr)
}

func TestHeadProvider_FailsWithoutCache(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()
	fetchErr := errors.New("rpc unavailable")

	tm.clock.EXPECT().Now().Return(epoch)
	tm.fetcher.EXPECT().LatestBlock(ctx).Return(uint64(0), fetchErr)

	_, err := tm.provider.GetLatestBlock(ctx)
	assert.ErrorIs(t, err, fetchErr)
}

func TestHeadProvider_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockHeadFetcher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	provider := block.NewHeadProvider(fetcher, block.Config{}, clock)
	ctx := context.Background()

	gomock.InOrder(
		clock.EXPECT().Now().Return(epoch),
		fetcher.EXPECT().LatestBlock(ctx).Return(uint64(7), nil),
		clock.EXPECT().Now().Return(epoch.Add(block.DEFAULT_HEAD_TTL-time.Second)),
	)

	_, err := provider.GetLatestBlock(ctx)
	assert.NoError(t, err)
	blockNum, err := provider.GetLatestBlock(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(7), blockNum)
}
