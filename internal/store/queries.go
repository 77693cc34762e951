package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/feral-file/kuronje-indexer/internal/store/schema"
)

const (
	// DEFAULT_LIST_LIMIT is used when a list query does not specify a limit
	DEFAULT_LIST_LIMIT = 20
	// MAX_LIST_LIMIT caps the page size of list queries
	MAX_LIST_LIMIT = 100
)

// GetAccount returns an account by address, nil if unknown
func (s *dbStore) GetAccount(ctx context.Context, address string) (*schema.Account, error) {
	var account schema.Account
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetToken returns a token by id, nil if unknown
func (s *dbStore) GetToken(ctx context.Context, tokenID uint64) (*schema.Token, error) {
	var token schema.Token
	err := s.db.WithContext(ctx).Where("id = ?", tokenID).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}

// ListTokens returns tokens matching filter ordered by id, along with the total match count
func (s *dbStore) ListTokens(ctx context.Context, filter TokenFilter) ([]schema.Token, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Token{})
	if filter.Owner != nil {
		query = query.Where("owner = ?", *filter.Owner)
	}
	if filter.Revealed != nil {
		query = query.Where("is_revealed = ?", *filter.Revealed)
	}
	if filter.Burned != nil {
		query = query.Where("burned = ?", *filter.Burned)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tokens: %w", err)
	}

	var tokens []schema.Token
	err := query.
		Order("id ASC").
		Limit(normalizeLimit(filter.Limit)).
		Offset(int(filter.Offset)).
		Find(&tokens).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tokens: %w", err)
	}

	return tokens, uint64(total), nil
}

// ListTransfers returns transfer history newest first, along with the total match count
func (s *dbStore) ListTransfers(ctx context.Context, filter TransferFilter) ([]schema.TransferEvent, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.TransferEvent{})
	if filter.TokenID != nil {
		query = query.Where("token_id = ?", *filter.TokenID)
	}
	if filter.Address != nil {
		query = query.Where("from_address = ? OR to_address = ?", *filter.Address, *filter.Address)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transfers: %w", err)
	}

	var transfers []schema.TransferEvent
	err := query.
		Order("block_number DESC, log_index DESC").
		Limit(normalizeLimit(filter.Limit)).
		Offset(int(filter.Offset)).
		Find(&transfers).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transfers: %w", err)
	}

	return transfers, uint64(total), nil
}

// ListTopAccounts returns the accounts holding the most tokens, ties broken by address
func (s *dbStore) ListTopAccounts(ctx context.Context, limit int) ([]schema.Account, error) {
	var accounts []schema.Account
	err := s.db.WithContext(ctx).
		Where("token_count > 0").
		Order("token_count DESC, address ASC").
		Limit(normalizeLimit(limit)).
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list top accounts: %w", err)
	}
	return accounts, nil
}

// GetCollectionStats returns aggregate counters and the cursor computed in a single statement,
// so both come from the same snapshot
func (s *dbStore) GetCollectionStats(ctx context.Context, cursorKey string) (*CollectionStats, error) {
	var row struct {
		TotalSupply   uint64
		TotalRevealed uint64
		TotalBurned   uint64
		UniqueOwners  uint64
		TotalEvents   uint64
		Cursor        *string
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM tokens) AS total_supply,
			(SELECT COUNT(*) FROM tokens WHERE is_revealed) AS total_revealed,
			(SELECT COUNT(*) FROM tokens WHERE burned) AS total_burned,
			(SELECT COUNT(*) FROM accounts WHERE token_count > 0) AS unique_owners,
			(SELECT COUNT(*) FROM transfer_events)
				+ (SELECT COUNT(*) FROM mint_events)
				+ (SELECT COUNT(*) FROM reveal_events) AS total_events,
			(SELECT value FROM key_value_store WHERE key = ?) AS cursor
	`, cursorKey).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get collection stats: %w", err)
	}

	stats := CollectionStats{
		TotalSupply:   row.TotalSupply,
		TotalRevealed: row.TotalRevealed,
		TotalBurned:   row.TotalBurned,
		UniqueOwners:  row.UniqueOwners,
		TotalEvents:   row.TotalEvents,
	}
	if row.Cursor != nil {
		stats.Cursor, err = parseCursor(*row.Cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cursor %s: %w", cursorKey, err)
		}
	}
	return &stats, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DEFAULT_LIST_LIMIT
	}
	if limit > MAX_LIST_LIMIT {
		return MAX_LIST_LIMIT
	}
	return limit
}
