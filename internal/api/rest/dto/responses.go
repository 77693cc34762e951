package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/store"
	"github.com/feral-file/kuronje-indexer/internal/store/schema"
)

// AccountResponse represents an address and the number of tokens it currently holds
type AccountResponse struct {
	Address        string    `json:"address"`
	TokenCount     int64     `json:"token_count"`
	FirstSeenAt    time.Time `json:"first_seen_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// TokenResponse represents the current state of a token
type TokenResponse struct {
	ID             uint64     `json:"id"`
	Owner          string     `json:"owner"`
	MetadataID     uint64     `json:"metadata_id"`
	IsRevealed     bool       `json:"is_revealed"`
	RevealedBy     *string    `json:"revealed_by,omitempty"`
	RevealedAt     *time.Time `json:"revealed_at,omitempty"`
	Burned         bool       `json:"burned"`
	MintedAt       time.Time  `json:"minted_at"`
	LastActivityAt time.Time  `json:"last_activity_at"`
}

// TransferResponse represents a journaled Transfer event
type TransferResponse struct {
	ID          string          `json:"id"`
	TokenID     uint64          `json:"token_id"`
	FromAddress string          `json:"from_address"`
	ToAddress   string          `json:"to_address"`
	TxHash      string          `json:"tx_hash"`
	BlockNumber uint64          `json:"block_number"`
	LogIndex    uint            `json:"log_index"`
	BlockHash   string          `json:"block_hash"`
	Timestamp   time.Time       `json:"timestamp"`
	Raw         json.RawMessage `json:"raw,omitempty"`
}

// CollectionStatsResponse represents aggregate counters over the projection
type CollectionStatsResponse struct {
	TotalSupply   uint64           `json:"total_supply"`
	TotalRevealed uint64           `json:"total_revealed"`
	TotalBurned   uint64           `json:"total_burned"`
	UniqueOwners  uint64           `json:"unique_owners"`
	TotalEvents   uint64           `json:"total_events"`
	Cursor        *domain.Position `json:"cursor"`
}

// TokenListResponse represents a paginated list of tokens
type TokenListResponse struct {
	Tokens []TokenResponse `json:"items"`
	Offset uint64          `json:"offset"`
	Total  uint64          `json:"total"`
}

// TransferListResponse represents a paginated list of transfers
type TransferListResponse struct {
	Transfers []TransferResponse `json:"items"`
	Offset    uint64             `json:"offset"`
	Total     uint64             `json:"total"`
}

// LeaderboardResponse represents the accounts holding the most tokens
type LeaderboardResponse struct {
	Accounts []AccountResponse `json:"items"`
}

// MapAccountToDTO maps a schema.Account to AccountResponse
func MapAccountToDTO(account *schema.Account) AccountResponse {
	return AccountResponse{
		Address:        account.Address,
		TokenCount:     account.TokenCount,
		FirstSeenAt:    account.FirstSeenAt,
		LastActivityAt: account.LastActivityAt,
	}
}

// MapTokenToDTO maps a schema.Token to TokenResponse
func MapTokenToDTO(token *schema.Token) TokenResponse {
	return TokenResponse{
		ID:             token.ID,
		Owner:          token.Owner,
		MetadataID:     token.MetadataID,
		IsRevealed:     token.IsRevealed,
		RevealedBy:     token.RevealedBy,
		RevealedAt:     token.RevealedAt,
		Burned:         token.Burned,
		MintedAt:       token.MintedAt,
		LastActivityAt: token.LastActivityAt,
	}
}

// MapTransferToDTO maps a schema.TransferEvent to TransferResponse
func MapTransferToDTO(event *schema.TransferEvent) TransferResponse {
	return TransferResponse{
		ID:          event.ID,
		TokenID:     event.TokenID,
		FromAddress: event.FromAddress,
		ToAddress:   event.ToAddress,
		TxHash:      event.TxHash,
		BlockNumber: event.BlockNumber,
		LogIndex:    event.LogIndex,
		BlockHash:   event.BlockHash,
		Timestamp:   event.Timestamp,
		Raw:         json.RawMessage(event.Raw),
	}
}

// MapStatsToDTO maps store.CollectionStats to CollectionStatsResponse
func MapStatsToDTO(stats *store.CollectionStats) CollectionStatsResponse {
	return CollectionStatsResponse{
		TotalSupply:   stats.TotalSupply,
		TotalRevealed: stats.TotalRevealed,
		TotalBurned:   stats.TotalBurned,
		UniqueOwners:  stats.UniqueOwners,
		TotalEvents:   stats.TotalEvents,
		Cursor:        stats.Cursor,
	}
}
