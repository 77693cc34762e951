package store

import (
	"fmt"
	"sort"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"

	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/store/schema"
)

// AppendJournal inserts the journal record of event.
// A record with the same id already present is not an error, it reports inserted=false.
func (t *gormTx) AppendJournal(event domain.Event) (bool, error) {
	var record interface{}
	switch e := event.(type) {
	case domain.TransferEvent:
		record = transferRecord(e)
	case domain.MintEvent:
		record = mintRecord(e)
	case domain.RevealEvent:
		record = revealRecord(e)
	default:
		return false, fmt.Errorf("unsupported event type %T", event)
	}

	result := t.db.Clauses(clause.OnConflict{DoNothing: true}).Create(record)
	if result.Error != nil {
		return false, fmt.Errorf("failed to append %s journal record %s: %w", event.Kind(), event.Meta().ID, result.Error)
	}

	return result.RowsAffected > 0, nil
}

// LoadJournal returns the journal of all kinds merged in position order
func (t *gormTx) LoadJournal() ([]domain.Event, error) {
	var transfers []schema.TransferEvent
	if err := t.db.Order("block_number ASC, log_index ASC").Find(&transfers).Error; err != nil {
		return nil, fmt.Errorf("failed to load transfer journal: %w", err)
	}
	var mints []schema.MintEvent
	if err := t.db.Order("block_number ASC, log_index ASC").Find(&mints).Error; err != nil {
		return nil, fmt.Errorf("failed to load mint journal: %w", err)
	}
	var reveals []schema.RevealEvent
	if err := t.db.Order("block_number ASC, log_index ASC").Find(&reveals).Error; err != nil {
		return nil, fmt.Errorf("failed to load reveal journal: %w", err)
	}

	events := make([]domain.Event, 0, len(transfers)+len(mints)+len(reveals))
	for _, r := range transfers {
		events = append(events, transferFromRecord(r))
	}
	for _, r := range mints {
		events = append(events, mintFromRecord(r))
	}
	for _, r := range reveals {
		events = append(events, revealFromRecord(r))
	}

	// Positions are unique across tables, so a stable sort yields one total order
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Meta().Position.Compare(events[j].Meta().Position) < 0
	})

	return events, nil
}

// DeleteJournalFrom deletes journal records at or after pos in every journal table
func (t *gormTx) DeleteJournalFrom(pos domain.Position) (int64, error) {
	where := "block_number > ? OR (block_number = ? AND log_index >= ?)"

	var deleted int64
	for _, model := range []interface{}{&schema.TransferEvent{}, &schema.MintEvent{}, &schema.RevealEvent{}} {
		result := t.db.Where(where, pos.BlockNumber, pos.BlockNumber, pos.LogIndex).Delete(model)
		if result.Error != nil {
			return deleted, fmt.Errorf("failed to delete journal from %s: %w", pos, result.Error)
		}
		deleted += result.RowsAffected
	}

	return deleted, nil
}

// LastJournalPosition returns the position of the newest journal record, nil when empty
func (t *gormTx) LastJournalPosition() (*domain.Position, error) {
	var last *domain.Position
	for _, table := range []string{
		schema.TransferEvent{}.TableName(),
		schema.MintEvent{}.TableName(),
		schema.RevealEvent{}.TableName(),
	} {
		var rows []domain.Position
		err := t.db.Table(table).
			Select("block_number, log_index").
			Order("block_number DESC, log_index DESC").
			Limit(1).
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to read last position of %s: %w", table, err)
		}
		if len(rows) > 0 && (last == nil || rows[0].After(*last)) {
			pos := rows[0]
			last = &pos
		}
	}

	return last, nil
}

func rawJSON(meta domain.EventMeta) datatypes.JSON {
	if len(meta.Raw) == 0 {
		return nil
	}
	return datatypes.JSON(meta.Raw)
}

func transferRecord(e domain.TransferEvent) *schema.TransferEvent {
	return &schema.TransferEvent{
		ID:          e.ID,
		TxHash:      e.TxHash,
		BlockNumber: e.Position.BlockNumber,
		LogIndex:    e.Position.LogIndex,
		BlockHash:   e.BlockHash,
		Timestamp:   e.BlockTime,
		FromAddress: e.From,
		ToAddress:   e.To,
		TokenID:     e.TokenID,
		Raw:         rawJSON(e.EventMeta),
	}
}

func mintRecord(e domain.MintEvent) *schema.MintEvent {
	return &schema.MintEvent{
		ID:          e.ID,
		TxHash:      e.TxHash,
		BlockNumber: e.Position.BlockNumber,
		LogIndex:    e.Position.LogIndex,
		BlockHash:   e.BlockHash,
		Timestamp:   e.BlockTime,
		ToAddress:   e.To,
		TokenID:     e.TokenID,
		MetadataID:  e.MetadataID,
		MintedAt:    e.MintedAt,
		Raw:         rawJSON(e.EventMeta),
	}
}

func revealRecord(e domain.RevealEvent) *schema.RevealEvent {
	return &schema.RevealEvent{
		ID:          e.ID,
		TxHash:      e.TxHash,
		BlockNumber: e.Position.BlockNumber,
		LogIndex:    e.Position.LogIndex,
		BlockHash:   e.BlockHash,
		Timestamp:   e.BlockTime,
		TokenID:     e.TokenID,
		MetadataID:  e.MetadataID,
		Revealer:    e.Revealer,
		RevealedAt:  e.RevealedAt,
		Raw:         rawJSON(e.EventMeta),
	}
}

func transferFromRecord(r schema.TransferEvent) domain.TransferEvent {
	return domain.TransferEvent{
		EventMeta: domain.EventMeta{
			ID:        r.ID,
			Position:  domain.Position{BlockNumber: r.BlockNumber, LogIndex: r.LogIndex},
			TxHash:    r.TxHash,
			BlockHash: r.BlockHash,
			BlockTime: r.Timestamp,
			Raw:       []byte(r.Raw),
		},
		From:    r.FromAddress,
		To:      r.ToAddress,
		TokenID: r.TokenID,
	}
}

func mintFromRecord(r schema.MintEvent) domain.MintEvent {
	return domain.MintEvent{
		EventMeta: domain.EventMeta{
			ID:        r.ID,
			Position:  domain.Position{BlockNumber: r.BlockNumber, LogIndex: r.LogIndex},
			TxHash:    r.TxHash,
			BlockHash: r.BlockHash,
			BlockTime: r.Timestamp,
			Raw:       []byte(r.Raw),
		},
		To:         r.ToAddress,
		TokenID:    r.TokenID,
		MetadataID: r.MetadataID,
		MintedAt:   r.MintedAt,
	}
}

func revealFromRecord(r schema.RevealEvent) domain.RevealEvent {
	return domain.RevealEvent{
		EventMeta: domain.EventMeta{
			ID:        r.ID,
			Position:  domain.Position{BlockNumber: r.BlockNumber, LogIndex: r.LogIndex},
			TxHash:    r.TxHash,
			BlockHash: r.BlockHash,
			BlockTime: r.Timestamp,
			Raw:       []byte(r.Raw),
		},
		TokenID:    r.TokenID,
		MetadataID: r.MetadataID,
		Revealer:   r.Revealer,
		RevealedAt: r.RevealedAt,
	}
}
