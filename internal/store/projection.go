package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/kuronje-indexer/internal/store/schema"
)

// GetAccount returns an account locked for update, nil if unknown
func (t *gormTx) GetAccount(address string) (*schema.Account, error) {
	var account schema.Account
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("address = ?", address).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account %s: %w", address, err)
	}
	return &account, nil
}

// InsertAccount inserts an account if absent. Existing counters are never overwritten.
func (t *gormTx) InsertAccount(account *schema.Account) (bool, error) {
	result := t.db.Clauses(clause.OnConflict{DoNothing: true}).Create(account)
	if result.Error != nil {
		return false, fmt.Errorf("failed to insert account %s: %w", account.Address, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// UpdateAccount persists token count and activity of an existing account
func (t *gormTx) UpdateAccount(account *schema.Account) error {
	result := t.db.Model(&schema.Account{}).
		Where("address = ?", account.Address).
		Updates(map[string]interface{}{
			"token_count":      account.TokenCount,
			"last_activity_at": account.LastActivityAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update account %s: %w", account.Address, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update account %s: %w", account.Address, gorm.ErrRecordNotFound)
	}
	return nil
}

// GetToken returns a token locked for update, nil if unknown
func (t *gormTx) GetToken(tokenID uint64) (*schema.Token, error) {
	var token schema.Token
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", tokenID).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token %d: %w", tokenID, err)
	}
	return &token, nil
}

// InsertToken inserts a token if absent, returning false when the id already existed
func (t *gormTx) InsertToken(token *schema.Token) (bool, error) {
	result := t.db.Clauses(clause.OnConflict{DoNothing: true}).Create(token)
	if result.Error != nil {
		return false, fmt.Errorf("failed to insert token %d: %w", token.ID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// UpdateToken persists the mutable fields of an existing token
func (t *gormTx) UpdateToken(token *schema.Token) error {
	result := t.db.Model(&schema.Token{}).
		Where("id = ?", token.ID).
		Updates(map[string]interface{}{
			"owner":            token.Owner,
			"metadata_id":      token.MetadataID,
			"is_revealed":      token.IsRevealed,
			"revealed_by":      token.RevealedBy,
			"revealed_at":      token.RevealedAt,
			"burned":           token.Burned,
			"last_activity_at": token.LastActivityAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update token %d: %w", token.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update token %d: %w", token.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// ClearProjection deletes every token and account. Journal and cursor are left untouched.
func (t *gormTx) ClearProjection() error {
	if err := t.db.Where("1 = 1").Delete(&schema.Token{}).Error; err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	if err := t.db.Where("1 = 1").Delete(&schema.Account{}).Error; err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}
	return nil
}
