package schema

import (
	"time"

	"gorm.io/datatypes"
)

// TransferEvent represents the transfer_events table - immutable journal of Transfer logs
type TransferEvent struct {
	// ID is "<txHash>-<logIndex>"
	ID string `gorm:"column:id;primaryKey;type:text"`
	// TxHash is the transaction hash that emitted the log
	TxHash string `gorm:"column:tx_hash;not null;type:text"`
	// BlockNumber is the block that contains the log
	BlockNumber uint64 `gorm:"column:block_number;not null;index:idx_transfer_events_position,priority:1"`
	// LogIndex is the position of the log inside the block
	LogIndex uint `gorm:"column:log_index;not null;index:idx_transfer_events_position,priority:2"`
	// BlockHash is the hash of the block that contains the log
	BlockHash string `gorm:"column:block_hash;not null;type:text"`
	// Timestamp is the block time
	Timestamp time.Time `gorm:"column:timestamp;not null"`
	// FromAddress is the sender, the zero address for mints
	FromAddress string `gorm:"column:from_address;not null;type:text;index:idx_transfer_events_from"`
	// ToAddress is the receiver, the zero address for burns
	ToAddress string `gorm:"column:to_address;not null;type:text;index:idx_transfer_events_to"`
	// TokenID is the transferred token
	TokenID uint64 `gorm:"column:token_id;not null;index:idx_transfer_events_token_id"`
	// Raw contains the source log as JSON
	Raw datatypes.JSON `gorm:"column:raw"`
	// CreatedAt is the timestamp when this record was indexed
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for the TransferEvent model
func (TransferEvent) TableName() string {
	return "transfer_events"
}

// MintEvent represents the mint_events table - immutable journal of TokenMinted logs
type MintEvent struct {
	// ID is "<txHash>-<logIndex>"
	ID string `gorm:"column:id;primaryKey;type:text"`
	// TxHash is the transaction hash that emitted the log
	TxHash string `gorm:"column:tx_hash;not null;type:text"`
	// BlockNumber is the block that contains the log
	BlockNumber uint64 `gorm:"column:block_number;not null;index:idx_mint_events_position,priority:1"`
	// LogIndex is the position of the log inside the block
	LogIndex uint `gorm:"column:log_index;not null;index:idx_mint_events_position,priority:2"`
	// BlockHash is the hash of the block that contains the log
	BlockHash string `gorm:"column:block_hash;not null;type:text"`
	// Timestamp is the block time
	Timestamp time.Time `gorm:"column:timestamp;not null"`
	// ToAddress is the minter
	ToAddress string `gorm:"column:to_address;not null;type:text"`
	// TokenID is the minted token
	TokenID uint64 `gorm:"column:token_id;not null;index:idx_mint_events_token_id"`
	// MetadataID is the metadata slot assigned at mint
	MetadataID uint64 `gorm:"column:metadata_id;not null"`
	// MintedAt is the contract provided mint timestamp
	MintedAt time.Time `gorm:"column:minted_at;not null"`
	// Raw contains the source log as JSON
	Raw datatypes.JSON `gorm:"column:raw"`
	// CreatedAt is the timestamp when this record was indexed
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for the MintEvent model
func (MintEvent) TableName() string {
	return "mint_events"
}

// RevealEvent represents the reveal_events table - immutable journal of TokenRevealed logs
type RevealEvent struct {
	// ID is "<txHash>-<logIndex>"
	ID string `gorm:"column:id;primaryKey;type:text"`
	// TxHash is the transaction hash that emitted the log
	TxHash string `gorm:"column:tx_hash;not null;type:text"`
	// BlockNumber is the block that contains the log
	BlockNumber uint64 `gorm:"column:block_number;not null;index:idx_reveal_events_position,priority:1"`
	// LogIndex is the position of the log inside the block
	LogIndex uint `gorm:"column:log_index;not null;index:idx_reveal_events_position,priority:2"`
	// BlockHash is the hash of the block that contains the log
	BlockHash string `gorm:"column:block_hash;not null;type:text"`
	// Timestamp is the block time
	Timestamp time.Time `gorm:"column:timestamp;not null"`
	// TokenID is the revealed token
	TokenID uint64 `gorm:"column:token_id;not null;index:idx_reveal_events_token_id"`
	// MetadataID is the metadata slot the token was revealed into
	MetadataID uint64 `gorm:"column:metadata_id;not null"`
	// Revealer is the address that triggered the reveal
	Revealer string `gorm:"column:revealer;not null;type:text"`
	// RevealedAt is the contract provided reveal timestamp
	RevealedAt time.Time `gorm:"column:revealed_at;not null"`
	// Raw contains the source log as JSON
	Raw datatypes.JSON `gorm:"column:raw"`
	// CreatedAt is the timestamp when this record was indexed
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for the RevealEvent model
func (RevealEvent) TableName() string {
	return "reveal_events"
}
