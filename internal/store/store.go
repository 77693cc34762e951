package store

import (
	"context"

	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/store/schema"
)

// Store is the persistence layer shared by the projection engine and the query service
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore,Reader=MockReader
type Store interface {
	Reader

	// WithTx runs fn inside a single database transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close closes the underlying database connection
	Close() error
}

// Reader is the read-only view used by the query service
type Reader interface {
	// Ping checks the database connection
	Ping(ctx context.Context) error
	// GetCursor returns the projection cursor stored under key, nil if none was written yet
	GetCursor(ctx context.Context, key string) (*domain.Position, error)
	// GetAccount returns an account by address, nil if unknown
	GetAccount(ctx context.Context, address string) (*schema.Account, error)
	// GetToken returns a token by id, nil if unknown
	GetToken(ctx context.Context, tokenID uint64) (*schema.Token, error)
	// ListTokens returns tokens matching filter ordered by id, along with the total match count
	ListTokens(ctx context.Context, filter TokenFilter) ([]schema.Token, uint64, error)
	// ListTransfers returns transfer history newest first, along with the total match count
	ListTransfers(ctx context.Context, filter TransferFilter) ([]schema.TransferEvent, uint64, error)
	// ListTopAccounts returns the accounts holding the most tokens
	ListTopAccounts(ctx context.Context, limit int) ([]schema.Account, error)
	// GetCollectionStats returns aggregate counters over the projection together with
	// the cursor stored under cursorKey, read in one statement
	GetCollectionStats(ctx context.Context, cursorKey string) (*CollectionStats, error)
}

// Tx is a unit of work bound to one database transaction.
// The engine composes these primitives; the store enforces no business rules.
type Tx interface {
	// LockCursor reads the cursor under key and locks its row until the transaction ends
	LockCursor(key string) (*domain.Position, error)
	// AdvanceCursor writes pos only when it is strictly after the stored cursor
	AdvanceCursor(key string, pos domain.Position) (bool, error)
	// ResetCursor overwrites the cursor, clearing it when pos is nil
	ResetCursor(key string, pos *domain.Position) error

	// AppendJournal inserts the journal record of event, returning false if its id already exists
	AppendJournal(event domain.Event) (bool, error)
	// LoadJournal returns every journal record of all kinds ordered by position
	LoadJournal() ([]domain.Event, error)
	// DeleteJournalFrom deletes journal records at or after pos
	DeleteJournalFrom(pos domain.Position) (int64, error)
	// LastJournalPosition returns the position of the newest journal record, nil when empty
	LastJournalPosition() (*domain.Position, error)

	// GetAccount returns an account locked for update, nil if unknown
	GetAccount(address string) (*schema.Account, error)
	// InsertAccount inserts an account if absent, returning false when it already existed
	InsertAccount(account *schema.Account) (bool, error)
	// UpdateAccount persists token count and activity of an existing account
	UpdateAccount(account *schema.Account) error

	// GetToken returns a token locked for update, nil if unknown
	GetToken(tokenID uint64) (*schema.Token, error)
	// InsertToken inserts a token if absent, returning false when the id already existed
	InsertToken(token *schema.Token) (bool, error)
	// UpdateToken persists the mutable fields of an existing token
	UpdateToken(token *schema.Token) error

	// ClearProjection deletes every account and token
	ClearProjection() error
}

// TokenFilter narrows ListTokens
type TokenFilter struct {
	Owner    *string
	Revealed *bool
	Burned   *bool
	Limit    int
	Offset   uint64
}

// TransferFilter narrows ListTransfers
type TransferFilter struct {
	TokenID *uint64
	Address *string
	Limit   int
	Offset  uint64
}

// CollectionStats holds aggregate counters over the projection
type CollectionStats struct {
	TotalSupply   uint64
	TotalRevealed uint64
	TotalBurned   uint64
	UniqueOwners  uint64
	TotalEvents   uint64
	// Cursor is the projection position the counters reflect, nil before the first event
	Cursor *domain.Position
}
