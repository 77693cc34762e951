package schema

import "time"

// Account represents the accounts table - one row per address that ever held or received a token
type Account struct {
	// Address is the EIP-55 checksummed address
	Address string `gorm:"column:address;primaryKey;type:text"`
	// TokenCount is the number of tokens currently owned by the address
	TokenCount int64 `gorm:"column:token_count;not null;check:chk_accounts_token_count,token_count >= 0;index:idx_accounts_token_count"`
	// FirstSeenAt is the block time of the first event that referenced the address
	FirstSeenAt time.Time `gorm:"column:first_seen_at;not null"`
	// LastActivityAt is the block time of the latest event that changed the address balance
	LastActivityAt time.Time `gorm:"column:last_activity_at;not null"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
