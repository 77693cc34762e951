package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/kuronje-indexer/internal/api/rest"
	"github.com/feral-file/kuronje-indexer/internal/api/rest/dto"
	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/logger"
	"github.com/feral-file/kuronje-indexer/internal/mocks"
	"github.com/feral-file/kuronje-indexer/internal/store"
	"github.com/feral-file/kuronje-indexer/internal/store/schema"
)

const (
	testContract = "0x5C1A0CC6DAdf4d0fB31425461df35Ba80fCBc110"
	testAlice    = "0xA11ce0000000000000000000000000000000a11c"
)

var testTime = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

func setupRouter(t *testing.T) (*gin.Engine, *mocks.MockReader) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(reader, domain.ChainEthereumMainnet, testContract))
	return router, reader
}

func doGet(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) rest.APIError {
	t.Helper()
	var body rest.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHealthCheck(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		router, reader := setupRouter(t)
		reader.EXPECT().Ping(gomock.Any()).Return(nil)

		rec := doGet(router, "/health")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("database down", func(t *testing.T) {
		router, reader := setupRouter(t)
		reader.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

		rec := doGet(router, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, rest.ErrCodeUnavailable, decodeError(t, rec).Code)
	})
}

func TestGetAccount(t *testing.T) {
	t.Run("found with normalized address", func(t *testing.T) {
		router, reader := setupRouter(t)
		reader.EXPECT().
			GetAccount(gomock.Any(), testAlice).
			Return(&schema.Account{Address: testAlice, TokenCount: 3, FirstSeenAt: testTime, LastActivityAt: testTime}, nil)

		rec := doGet(router, "/api/v1/accounts/0xa11ce0000000000000000000000000000000a11c")
		require.Equal(t, http.StatusOK, rec.Code)

		var body dto.AccountResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, testAlice, body.Address)
		assert.Equal(t, int64(3), body.TokenCount)
	})

	t.Run("unknown", func(t *testing.T) {
		router, reader := setupRouter(t)
		reader.EXPECT().GetAccount(gomock.Any(), testAlice).Return(nil, nil)

		rec := doGet(router, "/api/v1/accounts/"+testAlice)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, rest.ErrCodeNotFound, decodeError(t, rec).Code)
	})

	t.Run("invalid address", func(t *testing.T) {
		router, _ := setupRouter(t)

		rec := doGet(router, "/api/v1/accounts/not-an-address")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, rest.ErrCodeBadRequest, decodeError(t, rec).Code)
	})

	t.Run("store error is not leaked", func(t *testing.T) {
		router, reader := setupRouter(t)
		reader.EXPECT().GetAccount(gomock.Any(), gomock.Any()).Return(nil, errors.New("pq: secret detail"))

		rec := doGet(router, "/api/v1/accounts/"+testAlice)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, rest.ErrCodeInternalError, apiErr.Code)
		assert.NotContains(t, rec.Body.String(), "secret")
	})
}

func TestListAccountTokens(t *testing.T) {
	router, reader := setupRouter(t)
	reader.EXPECT().
		ListTokens(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter store.TokenFilter) ([]schema.Token, uint64, error) {
			require.NotNil(t, filter.Owner)
			assert.Equal(t, testAlice, *filter.Owner)
			assert.Equal(t, 5, filter.Limit)
			assert.Equal(t, uint64(10), filter.Offset)
			assert.Nil(t, filter.Revealed)
			return []schema.Token{{ID: 11, Owner: testAlice}, {ID: 12, Owner: testAlice}}, 12, nil
		})

	rec := doGet(router, "/api/v1/accounts/"+testAlice+"/tokens?limit=5&offset=10")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.TokenListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint64(12), body.Total)
	assert.Equal(t, uint64(10), body.Offset)
	require.Len(t, body.Tokens, 2)
	assert.Equal(t, uint64(11), body.Tokens[0].ID)
}

func TestGetToken(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, reader := setupRouter(t)
		revealer := testAlice
		reader.EXPECT().
			GetToken(gomock.Any(), uint64(42)).
			Return(&schema.Token{
				ID:         42,
				Owner:      testAlice,
				MetadataID: 7,
				IsRevealed: true,
				RevealedBy: &revealer,
				RevealedAt: &testTime,
				MintedAt:   testTime,
			}, nil)

		rec := doGet(router, "/api/v1/tokens/42")
		require.Equal(t, http.StatusOK, rec.Code)

		var body dto.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, uint64(42), body.ID)
		assert.Equal(t, uint64(7), body.MetadataID)
		assert.True(t, body.IsRevealed)
		require.NotNil(t, body.RevealedBy)
		assert.Equal(t, testAlice, *body.RevealedBy)
	})

	t.Run("unknown", func(t *testing.T) {
		router, reader := setupRouter(t)
		reader.EXPECT().GetToken(gomock.Any(), uint64(9)).Return(nil, nil)

		rec := doGet(router, "/api/v1/tokens/9")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	for _, id := range []string{"abc", "-1", "18446744073709551616"} {
		t.Run("invalid id "+id, func(t *testing.T) {
			router, _ := setupRouter(t)

			rec := doGet(router, "/api/v1/tokens/"+id)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListTokens(t *testing.T) {
	t.Run("filters and capped limit", func(t *testing.T) {
		router, reader := setupRouter(t)
		reader.EXPECT().
			ListTokens(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter store.TokenFilter) ([]schema.Token, uint64, error) {
				require.NotNil(t, filter.Owner)
				assert.Equal(t, testAlice, *filter.Owner)
				require.NotNil(t, filter.Revealed)
				assert.False(t, *filter.Revealed)
				assert.Nil(t, filter.Burned)
				assert.Equal(t, rest.MAX_PAGE_SIZE, filter.Limit)
				return nil, 0, nil
			})

		rec := doGet(router, "/api/v1/tokens?owner=0xa11ce0000000000000000000000000000000a11c&revealed=false&limit=1000")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[],"offset":0,"total":0}`, rec.Body.String())
	})

	t.Run("default limit", func(t *testing.T) {
		router, reader := setupRouter(t)
		reader.EXPECT().
			ListTokens(gomock.Any(), store.TokenFilter{Limit: rest.DEFAULT_PAGE_SIZE}).
			Return([]schema.Token{}, uint64(0), nil)

		rec := doGet(router, "/api/v1/tokens")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid owner", func(t *testing.T) {
		router, _ := setupRouter(t)

		rec := doGet(router, "/api/v1/tokens?owner=0x123")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, rest.ErrCodeValidationFailed, decodeError(t, rec).Code)
	})

	t.Run("invalid revealed flag", func(t *testing.T) {
		router, _ := setupRouter(t)

		rec := doGet(router, "/api/v1/tokens?revealed=maybe")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListTransfers(t *testing.T) {
	router, reader := setupRouter(t)
	reader.EXPECT().
		ListTransfers(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter store.TransferFilter) ([]schema.TransferEvent, uint64, error) {
			require.NotNil(t, filter.TokenID)
			assert.Equal(t, uint64(5), *filter.TokenID)
			assert.Nil(t, filter.Address)
			return []schema.TransferEvent{
				{ID: "0xbb-0", TokenID: 5, BlockNumber: 20, FromAddress: testAlice, ToAddress: domain.ETHEREUM_ZERO_ADDRESS, Timestamp: testTime},
				{ID: "0xaa-1", TokenID: 5, BlockNumber: 10, LogIndex: 1, ToAddress: testAlice, Timestamp: testTime},
			}, 2, nil
		})

	rec := doGet(router, "/api/v1/transfers?token_id=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.TransferListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint64(2), body.Total)
	require.Len(t, body.Transfers, 2)
	assert.Equal(t, "0xbb-0", body.Transfers[0].ID)
	assert.Equal(t, uint(1), body.Transfers[1].LogIndex)

	t.Run("invalid token id", func(t *testing.T) {
		router, _ := setupRouter(t)

		rec := doGet(router, "/api/v1/transfers?token_id=x")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetLeaderboard(t *testing.T) {
	router, reader := setupRouter(t)
	reader.EXPECT().
		ListTopAccounts(gomock.Any(), 3).
		Return([]schema.Account{
			{Address: testAlice, TokenCount: 5},
		}, nil)

	rec := doGet(router, "/api/v1/owners/leaderboard?limit=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.LeaderboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Accounts, 1)
	assert.Equal(t, int64(5), body.Accounts[0].TokenCount)

	t.Run("default and capped limit", func(t *testing.T) {
		router, reader := setupRouter(t)
		gomock.InOrder(
			reader.EXPECT().ListTopAccounts(gomock.Any(), rest.DEFAULT_LEADERS).Return(nil, nil),
			reader.EXPECT().ListTopAccounts(gomock.Any(), rest.MAX_LEADERBOARD).Return(nil, nil),
		)

		assert.Equal(t, http.StatusOK, doGet(router, "/api/v1/owners/leaderboard").Code)
		rec := doGet(router, "/api/v1/owners/leaderboard?limit=100000")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
	})
}

func TestGetCollectionStats(t *testing.T) {
	cursorKey := domain.CursorKey(domain.ChainEthereumMainnet, testContract)

	t.Run("with cursor", func(t *testing.T) {
		router, reader := setupRouter(t)
		reader.EXPECT().GetCollectionStats(gomock.Any(), cursorKey).Return(&store.CollectionStats{
			TotalSupply:   10,
			TotalRevealed: 4,
			TotalBurned:   1,
			UniqueOwners:  3,
			TotalEvents:   25,
			Cursor:        &domain.Position{BlockNumber: 99, LogIndex: 2},
		}, nil)

		rec := doGet(router, "/api/v1/collection/stats")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"total_supply": 10,
			"total_revealed": 4,
			"total_burned": 1,
			"unique_owners": 3,
			"total_events": 25,
			"cursor": {"block_number": 99, "log_index": 2}
		}`, rec.Body.String())
	})

	t.Run("empty projection", func(t *testing.T) {
		router, reader := setupRouter(t)
		reader.EXPECT().GetCollectionStats(gomock.Any(), cursorKey).Return(&store.CollectionStats{}, nil)

		rec := doGet(router, "/api/v1/collection/stats")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"cursor":null`)
	})

	t.Run("store error", func(t *testing.T) {
		router, reader := setupRouter(t)
		reader.EXPECT().GetCollectionStats(gomock.Any(), cursorKey).Return(nil, errors.New("boom"))

		rec := doGet(router, "/api/v1/collection/stats")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
