package schema

import "time"

// Token represents the tokens table - the current state of every minted token
type Token struct {
	// ID is the on-chain token id
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	// Owner is the current owner address, the zero address once burned
	Owner string `gorm:"column:owner;not null;type:text;index:idx_tokens_owner"`
	// MetadataID is the metadata slot, replaced on reveal
	MetadataID uint64 `gorm:"column:metadata_id;not null"`
	// IsRevealed is set once and never cleared
	IsRevealed bool `gorm:"column:is_revealed;not null;index:idx_tokens_is_revealed"`
	// RevealedBy is the address that triggered the reveal
	RevealedBy *string `gorm:"column:revealed_by;type:text"`
	// RevealedAt is the contract timestamp of the reveal
	RevealedAt *time.Time `gorm:"column:revealed_at"`
	// Burned is true when the token was transferred to the zero address
	Burned bool `gorm:"column:burned;not null"`
	// MintedAt is the contract timestamp of the mint
	MintedAt time.Time `gorm:"column:minted_at;not null"`
	// LastActivityAt is the block time of the latest event applied to the token
	LastActivityAt time.Time `gorm:"column:last_activity_at;not null"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}
