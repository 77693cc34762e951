package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/kuronje-indexer/internal/api/rest/dto"
	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/store"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetAccount retrieves an account by address
	// GET /api/v1/accounts/:address
	GetAccount(c *gin.Context)

	// ListAccountTokens retrieves the tokens currently owned by an address, id ascending
	// GET /api/v1/accounts/:address/tokens?limit=<limit>&offset=<offset>
	ListAccountTokens(c *gin.Context)

	// GetToken retrieves a single token by its id
	// GET /api/v1/tokens/:id
	GetToken(c *gin.Context)

	// ListTokens retrieves tokens with optional filters, id ascending
	// GET /api/v1/tokens?owner=<address>&revealed=<bool>&burned=<bool>&limit=<limit>&offset=<offset>
	ListTokens(c *gin.Context)

	// ListTransfers retrieves transfer history, newest first
	// GET /api/v1/transfers?token_id=<id>&address=<address>&limit=<limit>&offset=<offset>
	ListTransfers(c *gin.Context)

	// GetLeaderboard retrieves the accounts holding the most tokens
	// GET /api/v1/owners/leaderboard?limit=<limit>
	GetLeaderboard(c *gin.Context)

	// GetCollectionStats retrieves aggregate counters and the projection cursor
	// GET /api/v1/collection/stats
	GetCollectionStats(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	reader    store.Reader
	cursorKey string
}

// NewHandler creates a new REST API handler reading the projection of the given contract
func NewHandler(reader store.Reader, chain domain.Chain, contractAddress string) Handler {
	return &handler{
		reader:    reader,
		cursorKey: domain.CursorKey(chain, contractAddress),
	}
}

// GetAccount retrieves an account by address
func (h *handler) GetAccount(c *gin.Context) {
	address, ok := addressParam(c)
	if !ok {
		return
	}

	account, err := h.reader.GetAccount(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, "Failed to get account")
		return
	}

	if account == nil {
		respondNotFound(c, "Account not found")
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToDTO(account))
}

// ListAccountTokens retrieves the tokens currently owned by an address
func (h *handler) ListAccountTokens(c *gin.Context) {
	address, ok := addressParam(c)
	if !ok {
		return
	}

	queryParams, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	h.listTokens(c, store.TokenFilter{
		Owner:  &address,
		Limit:  queryParams.Limit,
		Offset: queryParams.Offset,
	})
}

// GetToken retrieves a single token by its id
func (h *handler) GetToken(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid token id", c.Param("id"))
		return
	}

	token, err := h.reader.GetToken(c.Request.Context(), tokenID)
	if err != nil {
		respondInternalError(c, err, "Failed to get token")
		return
	}

	if token == nil {
		respondNotFound(c, "Token not found")
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenToDTO(token))
}

// ListTokens retrieves tokens with optional filters
func (h *handler) ListTokens(c *gin.Context) {
	queryParams, err := ParseListTokensQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	h.listTokens(c, store.TokenFilter{
		Owner:    queryParams.Owner,
		Revealed: queryParams.Revealed,
		Burned:   queryParams.Burned,
		Limit:    queryParams.Limit,
		Offset:   queryParams.Offset,
	})
}

func (h *handler) listTokens(c *gin.Context, filter store.TokenFilter) {
	tokens, total, err := h.reader.ListTokens(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "Failed to list tokens")
		return
	}

	response := dto.TokenListResponse{
		Tokens: make([]dto.TokenResponse, 0, len(tokens)),
		Offset: filter.Offset,
		Total:  total,
	}
	for i := range tokens {
		response.Tokens = append(response.Tokens, dto.MapTokenToDTO(&tokens[i]))
	}

	c.JSON(http.StatusOK, response)
}

// ListTransfers retrieves transfer history
func (h *handler) ListTransfers(c *gin.Context) {
	queryParams, err := ParseListTransfersQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	transfers, total, err := h.reader.ListTransfers(c.Request.Context(), store.TransferFilter{
		TokenID: queryParams.TokenID,
		Address: queryParams.Address,
		Limit:   queryParams.Limit,
		Offset:  queryParams.Offset,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to list transfers")
		return
	}

	response := dto.TransferListResponse{
		Transfers: make([]dto.TransferResponse, 0, len(transfers)),
		Offset:    queryParams.Offset,
		Total:     total,
	}
	for i := range transfers {
		response.Transfers = append(response.Transfers, dto.MapTransferToDTO(&transfers[i]))
	}

	c.JSON(http.StatusOK, response)
}

// GetLeaderboard retrieves the accounts holding the most tokens
func (h *handler) GetLeaderboard(c *gin.Context) {
	queryParams, err := ParseLeaderboardQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	accounts, err := h.reader.ListTopAccounts(c.Request.Context(), queryParams.Limit)
	if err != nil {
		respondInternalError(c, err, "Failed to get leaderboard")
		return
	}

	response := dto.LeaderboardResponse{
		Accounts: make([]dto.AccountResponse, 0, len(accounts)),
	}
	for i := range accounts {
		response.Accounts = append(response.Accounts, dto.MapAccountToDTO(&accounts[i]))
	}

	c.JSON(http.StatusOK, response)
}

// GetCollectionStats retrieves aggregate counters and the projection cursor
func (h *handler) GetCollectionStats(c *gin.Context) {
	stats, err := h.reader.GetCollectionStats(c.Request.Context(), h.cursorKey)
	if err != nil {
		respondInternalError(c, err, "Failed to get collection stats")
		return
	}

	c.JSON(http.StatusOK, dto.MapStatsToDTO(stats))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	if err := h.reader.Ping(c.Request.Context()); err != nil {
		respondWithError(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "Database unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "kuronje-indexer-api",
	})
}

// addressParam validates and checksums the :address path parameter, responding on failure
func addressParam(c *gin.Context) (string, bool) {
	address := c.Param("address")
	if !domain.IsValidAddress(address) {
		respondBadRequest(c, "Invalid address", address)
		return "", false
	}
	return domain.NormalizeAddress(address), true
}
