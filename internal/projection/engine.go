package projection

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/logger"
	"github.com/feral-file/kuronje-indexer/internal/store"
	"github.com/feral-file/kuronje-indexer/internal/store/schema"
)

// Result describes what a single Apply did
type Result struct {
	// Applied is true when the event was journaled and its mutation committed
	Applied bool
	// Duplicate is true when the event id was already journaled; nothing changed
	Duplicate bool
	// Skipped is true for self transfers, which are neither journaled nor applied
	Skipped bool
	// CursorAdvanced is true when the cursor moved to the event position
	CursorAdvanced bool
}

// RebuildResult describes a completed rebuild
type RebuildResult struct {
	// Replayed is the number of journal records applied
	Replayed int
}

// Engine turns decoded events into durable journal records and projection state.
// Every call is one atomic unit: journal write, projection mutation and cursor move
// either all commit or none do.
//
//go:generate mockgen -source=engine.go -destination=../mocks/engine.go -package=mocks -mock_names=Engine=MockEngine
type Engine interface {
	// Apply journals and applies a single event
	Apply(ctx context.Context, event domain.Event) (Result, error)

	// Rebuild clears the projection and replays the whole journal
	Rebuild(ctx context.Context) (RebuildResult, error)

	// Rewind discards journal records at or after from, rebuilds the projection from what
	// remains and moves the cursor back to the last remaining record. It returns the new cursor.
	Rewind(ctx context.Context, from domain.Position) (*domain.Position, error)
}

type engine struct {
	store     store.Store
	cursorKey string
}

// NewEngine creates a projection engine that tracks its progress under cursorKey
func NewEngine(s store.Store, cursorKey string) Engine {
	return &engine{
		store:     s,
		cursorKey: cursorKey,
	}
}

// Apply journals and applies a single event
func (e *engine) Apply(ctx context.Context, event domain.Event) (Result, error) {
	var result Result
	meta := event.Meta()

	err := e.store.WithTx(ctx, func(tx store.Tx) error {
		// Serializes concurrent writers on the cursor row
		cursor, err := tx.LockCursor(e.cursorKey)
		if err != nil {
			return err
		}

		if isSelfTransfer(event) {
			result.Skipped = true
		} else {
			inserted, err := tx.AppendJournal(event)
			if err != nil {
				return err
			}
			if !inserted {
				result.Duplicate = true
			} else {
				// The journal must stay in applied order for replay
				if cursor != nil && !meta.Position.After(*cursor) {
					return fmt.Errorf("%w: out of order event, cursor is at %s", domain.ErrInvariantViolation, cursor)
				}
				if err := mutate(tx, event); err != nil {
					return err
				}
				result.Applied = true
			}
		}

		advanced, err := tx.AdvanceCursor(e.cursorKey, meta.Position)
		if err != nil {
			return err
		}
		result.CursorAdvanced = advanced
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to apply %s event %s at %s: %w", event.Kind(), meta.ID, meta.Position, err)
	}

	logger.DebugCtx(ctx, "Applied event",
		zap.String("kind", string(event.Kind())),
		zap.String("id", meta.ID),
		zap.Stringer("position", meta.Position),
		zap.Bool("duplicate", result.Duplicate),
		zap.Bool("skipped", result.Skipped))

	return result, nil
}

// Rebuild clears the projection and replays the whole journal in position order
func (e *engine) Rebuild(ctx context.Context) (RebuildResult, error) {
	var result RebuildResult

	err := e.store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.LockCursor(e.cursorKey); err != nil {
			return err
		}

		replayed, err := replay(tx)
		if err != nil {
			return err
		}
		result.Replayed = replayed
		return nil
	})
	if err != nil {
		return RebuildResult{}, fmt.Errorf("failed to rebuild projection: %w", err)
	}

	logger.InfoCtx(ctx, "Rebuilt projection from journal", zap.Int("replayed", result.Replayed))
	return result, nil
}

// Rewind discards journal records at or after from and rebuilds the projection from the rest
func (e *engine) Rewind(ctx context.Context, from domain.Position) (*domain.Position, error) {
	var cursor *domain.Position
	var deleted int64
	var replayed int

	err := e.store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.LockCursor(e.cursorKey); err != nil {
			return err
		}

		var err error
		deleted, err = tx.DeleteJournalFrom(from)
		if err != nil {
			return err
		}

		replayed, err = replay(tx)
		if err != nil {
			return err
		}

		cursor, err = tx.LastJournalPosition()
		if err != nil {
			return err
		}
		return tx.ResetCursor(e.cursorKey, cursor)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rewind projection to %s: %w", from, err)
	}

	logger.WarnCtx(ctx, "Rewound projection",
		zap.Stringer("from", from),
		zap.Int64("deleted", deleted),
		zap.Int("replayed", replayed),
		zap.Any("cursor", cursor))

	return cursor, nil
}

// replay clears the projection and re-applies every journal record without re-journaling
func replay(tx store.Tx) (int, error) {
	if err := tx.ClearProjection(); err != nil {
		return 0, err
	}

	events, err := tx.LoadJournal()
	if err != nil {
		return 0, err
	}

	for _, event := range events {
		if err := mutate(tx, event); err != nil {
			return 0, fmt.Errorf("failed to replay %s event %s: %w", event.Kind(), event.Meta().ID, err)
		}
	}

	return len(events), nil
}

// mutate applies the projection effect of an already journaled event
func mutate(tx store.Tx, event domain.Event) error {
	switch ev := event.(type) {
	case domain.TransferEvent:
		return applyTransfer(tx, ev)
	case domain.MintEvent:
		return applyMint(tx, ev)
	case domain.RevealEvent:
		return applyReveal(tx, ev)
	default:
		return fmt.Errorf("unsupported event type %T", event)
	}
}

func isSelfTransfer(event domain.Event) bool {
	transfer, ok := event.(domain.TransferEvent)
	return ok && domain.NormalizeAddress(transfer.From) == domain.NormalizeAddress(transfer.To)
}

func applyTransfer(tx store.Tx, ev domain.TransferEvent) error {
	from := domain.NormalizeAddress(ev.From)
	to := domain.NormalizeAddress(ev.To)
	at := ev.BlockTime

	// Token creation belongs to TokenMinted; the paired Transfer only introduces the receiver
	if domain.IsZeroAddress(from) {
		if domain.IsZeroAddress(to) {
			return nil
		}
		return ensureAccount(tx, to, at)
	}

	token, err := tx.GetToken(ev.TokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return fmt.Errorf("%w: transfer of token %d", domain.ErrUnknownToken, ev.TokenID)
	}
	if token.Owner != from {
		return fmt.Errorf("%w: token %d is owned by %s, not by sender %s",
			domain.ErrInvariantViolation, ev.TokenID, token.Owner, from)
	}

	if err := ensureAccount(tx, from, at); err != nil {
		return err
	}
	if err := adjustTokenCount(tx, from, -1, at); err != nil {
		return err
	}

	if domain.IsZeroAddress(to) {
		token.Owner = domain.ETHEREUM_ZERO_ADDRESS
		token.Burned = true
	} else {
		if err := ensureAccount(tx, to, at); err != nil {
			return err
		}
		if err := adjustTokenCount(tx, to, 1, at); err != nil {
			return err
		}
		token.Owner = to
	}
	token.LastActivityAt = at

	return tx.UpdateToken(token)
}

func applyMint(tx store.Tx, ev domain.MintEvent) error {
	to := domain.NormalizeAddress(ev.To)
	at := ev.BlockTime

	if domain.IsZeroAddress(to) {
		return fmt.Errorf("%w: token %d minted to the zero address", domain.ErrInvariantViolation, ev.TokenID)
	}

	if err := ensureAccount(tx, to, at); err != nil {
		return err
	}

	mintedAt := ev.MintedAt
	if mintedAt.IsZero() {
		mintedAt = at
	}

	inserted, err := tx.InsertToken(&schema.Token{
		ID:             ev.TokenID,
		Owner:          to,
		MetadataID:     ev.MetadataID,
		MintedAt:       mintedAt,
		LastActivityAt: at,
	})
	if err != nil {
		return err
	}
	if !inserted {
		// Contracts never mint an id twice; keep the first mint
		logger.Warn("Ignoring mint of an existing token",
			zap.Uint64("token_id", ev.TokenID),
			zap.String("event_id", ev.ID))
		return nil
	}

	return adjustTokenCount(tx, to, 1, at)
}

func applyReveal(tx store.Tx, ev domain.RevealEvent) error {
	token, err := tx.GetToken(ev.TokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return fmt.Errorf("%w: reveal of token %d", domain.ErrUnknownToken, ev.TokenID)
	}
	if token.IsRevealed {
		return nil
	}

	revealer := domain.NormalizeAddress(ev.Revealer)
	revealedAt := ev.RevealedAt
	if revealedAt.IsZero() {
		revealedAt = ev.BlockTime
	}

	token.IsRevealed = true
	token.RevealedBy = &revealer
	token.RevealedAt = &revealedAt
	token.MetadataID = ev.MetadataID
	token.LastActivityAt = ev.BlockTime

	return tx.UpdateToken(token)
}

// ensureAccount creates the account with a zero count unless it already exists
func ensureAccount(tx store.Tx, address string, at time.Time) error {
	_, err := tx.InsertAccount(&schema.Account{
		Address:        address,
		TokenCount:     0,
		FirstSeenAt:    at,
		LastActivityAt: at,
	})
	return err
}

// adjustTokenCount moves an account balance by delta, refusing to go below zero
func adjustTokenCount(tx store.Tx, address string, delta int64, at time.Time) error {
	account, err := tx.GetAccount(address)
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("%w: account %s does not exist", domain.ErrInvariantViolation, address)
	}

	count := account.TokenCount + delta
	if count < 0 {
		return fmt.Errorf("%w: token count of %s would become %d", domain.ErrInvariantViolation, address, count)
	}

	account.TokenCount = count
	account.LastActivityAt = at
	return tx.UpdateAccount(account)
}
