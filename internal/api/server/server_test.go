package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/kuronje-indexer/internal/api/middleware"
	"github.com/feral-file/kuronje-indexer/internal/api/rest/dto"
	"github.com/feral-file/kuronje-indexer/internal/api/server"
	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/logger"
	"github.com/feral-file/kuronje-indexer/internal/projection"
	"github.com/feral-file/kuronje-indexer/internal/store/storetest"
)

const testContract = "0x5C1A0CC6DAdf4d0fB31425461df35Ba80fCBc110"

var (
	alice = domain.NormalizeAddress("0xa11ce0000000000000000000000000000000a11c")
	bob   = domain.NormalizeAddress("0xb0b000000000000000000000000000000000b0b0")

	baseTime = time.Unix(1_700_000_000, 0).UTC()
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func meta(block uint64) domain.EventMeta {
	txHash := fmt.Sprintf("0x%064x", block)
	return domain.EventMeta{
		ID:        domain.EventID(txHash, 0),
		Position:  domain.Position{BlockNumber: block},
		TxHash:    txHash,
		BlockHash: fmt.Sprintf("0x%064x", block+1_000_000),
		BlockTime: baseTime.Add(time.Duration(block) * 12 * time.Second),
		Raw:       []byte(fmt.Sprintf(`{"blockNumber":"0x%x"}`, block)),
	}
}

// setupServer projects a small history and returns the full HTTP handler over it
func setupServer(t *testing.T) http.Handler {
	s := storetest.NewSQLiteStore(t)
	engine := projection.NewEngine(s, domain.CursorKey(domain.ChainEthereumMainnet, testContract))

	events := []domain.Event{
		domain.MintEvent{EventMeta: meta(1), To: alice, TokenID: 1, MetadataID: 100, MintedAt: baseTime},
		domain.MintEvent{EventMeta: meta(2), To: alice, TokenID: 2, MetadataID: 101, MintedAt: baseTime},
		domain.RevealEvent{EventMeta: meta(3), TokenID: 1, MetadataID: 500, Revealer: alice, RevealedAt: baseTime},
		domain.TransferEvent{EventMeta: meta(4), From: alice, To: bob, TokenID: 2},
	}
	for _, event := range events {
		result, err := engine.Apply(context.Background(), event)
		require.NoError(t, err)
		require.True(t, result.Applied)
	}

	srv := server.New(server.Config{
		ChainID:         domain.ChainEthereumMainnet,
		ContractAddress: testContract,
	}, s)
	return srv.Handler()
}

func get(t *testing.T, handler http.Handler, path string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil {
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestServer_ProjectionQueries(t *testing.T) {
	handler := setupServer(t)

	var account dto.AccountResponse
	get(t, handler, "/api/v1/accounts/"+alice, &account)
	assert.Equal(t, int64(1), account.TokenCount)

	var tokens dto.TokenListResponse
	get(t, handler, "/api/v1/accounts/"+bob+"/tokens", &tokens)
	assert.Equal(t, uint64(1), tokens.Total)
	require.Len(t, tokens.Tokens, 1)
	assert.Equal(t, uint64(2), tokens.Tokens[0].ID)

	var token dto.TokenResponse
	get(t, handler, "/api/v1/tokens/1", &token)
	assert.True(t, token.IsRevealed)
	assert.Equal(t, uint64(500), token.MetadataID)
	assert.Equal(t, alice, token.Owner)

	var unrevealed dto.TokenListResponse
	get(t, handler, "/api/v1/tokens?revealed=false", &unrevealed)
	require.Len(t, unrevealed.Tokens, 1)
	assert.Equal(t, uint64(2), unrevealed.Tokens[0].ID)

	var transfers dto.TransferListResponse
	get(t, handler, "/api/v1/transfers?token_id=2", &transfers)
	require.Len(t, transfers.Transfers, 1)
	assert.Equal(t, alice, transfers.Transfers[0].FromAddress)
	assert.Equal(t, bob, transfers.Transfers[0].ToAddress)
	assert.JSONEq(t, `{"blockNumber":"0x4"}`, string(transfers.Transfers[0].Raw))

	var leaders dto.LeaderboardResponse
	get(t, handler, "/api/v1/owners/leaderboard", &leaders)
	require.Len(t, leaders.Accounts, 2)
	// Equal balances are ordered by address
	assert.Equal(t, alice, leaders.Accounts[0].Address)
	assert.Equal(t, bob, leaders.Accounts[1].Address)

	var stats dto.CollectionStatsResponse
	get(t, handler, "/api/v1/collection/stats", &stats)
	assert.Equal(t, uint64(2), stats.TotalSupply)
	assert.Equal(t, uint64(1), stats.TotalRevealed)
	assert.Equal(t, uint64(0), stats.TotalBurned)
	assert.Equal(t, uint64(2), stats.UniqueOwners)
	assert.Equal(t, uint64(4), stats.TotalEvents)
	require.NotNil(t, stats.Cursor)
	assert.Equal(t, domain.Position{BlockNumber: 4}, *stats.Cursor)

	rec := get(t, handler, "/api/v1/tokens/3", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	handler := setupServer(t)

	rec := get(t, handler, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, handler, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServer_RequestID(t *testing.T) {
	handler := setupServer(t)

	rec := get(t, handler, "/health", nil)
	generated := rec.Header().Get(middleware.RequestIDHeader)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)

	requestID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, requestID)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, requestID, rec.Header().Get(middleware.RequestIDHeader))
}

func TestServer_CORS(t *testing.T) {
	handler := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://gallery.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
