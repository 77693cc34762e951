package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainLocal           Chain = "eip155:31337"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainLocal
}

// EventKind represents the kind of a decoded contract event
type EventKind string

const (
	EventKindTransfer EventKind = "transfer"
	EventKindMint     EventKind = "mint"
	EventKindReveal   EventKind = "reveal"
)

// Position is the total order key of a log within a chain
type Position struct {
	BlockNumber uint64 `json:"block_number"`
	LogIndex    uint   `json:"log_index"`
}

// Compare returns -1, 0 or 1 when p is before, equal to or after o
func (p Position) Compare(o Position) int {
	switch {
	case p.BlockNumber < o.BlockNumber:
		return -1
	case p.BlockNumber > o.BlockNumber:
		return 1
	case p.LogIndex < o.LogIndex:
		return -1
	case p.LogIndex > o.LogIndex:
		return 1
	}
	return 0
}

// After reports whether p is strictly after o
func (p Position) After(o Position) bool {
	return p.Compare(o) > 0
}

// String encodes the position the way it is persisted as a cursor value
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.BlockNumber, p.LogIndex)
}

// ParsePosition parses a "<block>:<logIndex>" cursor value
func ParsePosition(value string) (Position, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, value)
	}
	block, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q: %v", ErrInvalidPosition, value, err)
	}
	logIndex, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q: %v", ErrInvalidPosition, value, err)
	}
	return Position{BlockNumber: block, LogIndex: uint(logIndex)}, nil
}

// EventID builds the unique identifier of a log: "<txHash>-<logIndex>"
func EventID(txHash string, logIndex uint) string {
	return fmt.Sprintf("%s-%d", strings.ToLower(txHash), logIndex)
}

// RawLog is a contract log as delivered by a log source
type RawLog struct {
	Address     common.Address
	Topics      []common.Hash
	Data        []byte
	BlockNumber uint64
	BlockHash   common.Hash
	TxHash      common.Hash
	LogIndex    uint
	BlockTime   time.Time
	// Removed is set when the log was reverted by a chain reorganisation
	Removed bool
}

// Position returns the position of the log
func (l RawLog) Position() Position {
	return Position{BlockNumber: l.BlockNumber, LogIndex: l.LogIndex}
}

// EventID returns the unique identifier of the log
func (l RawLog) EventID() string {
	return EventID(l.TxHash.Hex(), l.LogIndex)
}

// EventMeta holds the fields shared by every decoded event
type EventMeta struct {
	ID        string    `json:"id"`
	Position  Position  `json:"position"`
	TxHash    string    `json:"tx_hash"`
	BlockHash string    `json:"block_hash"`
	BlockTime time.Time `json:"block_time"`
	// Raw is the JSON encoded source log, persisted with the journal record
	Raw []byte `json:"-"`
}

// Event is a decoded contract event. The set of implementations is closed:
// TransferEvent, MintEvent and RevealEvent.
type Event interface {
	Kind() EventKind
	Meta() EventMeta
	isEvent()
}

// TransferEvent is an ERC-721 Transfer(from, to, tokenId)
type TransferEvent struct {
	EventMeta
	From    string `json:"from"`
	To      string `json:"to"`
	TokenID uint64 `json:"token_id"`
}

func (TransferEvent) Kind() EventKind   { return EventKindTransfer }
func (e TransferEvent) Meta() EventMeta { return e.EventMeta }
func (TransferEvent) isEvent()          {}

// MintEvent is TokenMinted(to, tokenId, metadataId, timestamp)
type MintEvent struct {
	EventMeta
	To         string    `json:"to"`
	TokenID    uint64    `json:"token_id"`
	MetadataID uint64    `json:"metadata_id"`
	MintedAt   time.Time `json:"minted_at"`
}

func (MintEvent) Kind() EventKind   { return EventKindMint }
func (e MintEvent) Meta() EventMeta { return e.EventMeta }
func (MintEvent) isEvent()          {}

// RevealEvent is TokenRevealed(tokenId, metadataId, revealer, timestamp)
type RevealEvent struct {
	EventMeta
	TokenID    uint64    `json:"token_id"`
	MetadataID uint64    `json:"metadata_id"`
	Revealer   string    `json:"revealer"`
	RevealedAt time.Time `json:"revealed_at"`
}

func (RevealEvent) Kind() EventKind   { return EventKindReveal }
func (e RevealEvent) Meta() EventMeta { return e.EventMeta }
func (RevealEvent) isEvent()          {}

// NormalizeAddress normalizes an ethereum address to its checksummed form
func NormalizeAddress(address string) string {
	return common.HexToAddress(address).Hex()
}

// IsValidAddress checks if the given string is a hex encoded ethereum address
func IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

// IsZeroAddress checks if the address is the zero address used for mints and burns
func IsZeroAddress(address string) bool {
	return address == "" || NormalizeAddress(address) == ETHEREUM_ZERO_ADDRESS
}

// CursorKey builds the key_value_store key of the projection cursor
func CursorKey(chain Chain, contractAddress string) string {
	return fmt.Sprintf("%s:%s:%s", CURSOR_KEY_PREFIX, chain, NormalizeAddress(contractAddress))
}
