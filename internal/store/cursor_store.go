package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/kuronje-indexer/internal/domain"
	"github.com/feral-file/kuronje-indexer/internal/store/schema"
)

// GetCursor returns the projection cursor stored under key, nil if none was written yet
func (s *dbStore) GetCursor(ctx context.Context, key string) (*domain.Position, error) {
	return readCursor(s.db.WithContext(ctx), key)
}

// LockCursor reads the cursor and takes a row lock on it so concurrent writers serialize.
// An empty row is seeded first so there is something to lock before the first advance.
// SQLite ignores the locking clause; its single writer connection already serializes.
func (t *gormTx) LockCursor(key string) (*domain.Position, error) {
	err := t.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&schema.KeyValueStore{
		Key:   key,
		Value: "",
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to seed cursor: %w", err)
	}
	return readCursor(t.db.Clauses(clause.Locking{Strength: "UPDATE"}), key)
}

// AdvanceCursor writes pos only when it is strictly after the stored cursor
func (t *gormTx) AdvanceCursor(key string, pos domain.Position) (bool, error) {
	current, err := readCursor(t.db, key)
	if err != nil {
		return false, err
	}
	if current != nil && !pos.After(*current) {
		return false, nil
	}

	if err := writeCursor(t.db, key, pos); err != nil {
		return false, err
	}
	return true, nil
}

// ResetCursor overwrites the cursor, clearing it when pos is nil.
// A cleared cursor keeps its row so it can still be locked.
func (t *gormTx) ResetCursor(key string, pos *domain.Position) error {
	if pos == nil {
		return upsertCursor(t.db, key, "")
	}
	return writeCursor(t.db, key, *pos)
}

func readCursor(db *gorm.DB, key string) (*domain.Position, error) {
	var kv schema.KeyValueStore
	err := db.Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cursor: %w", err)
	}

	pos, err := parseCursor(kv.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cursor %s: %w", key, err)
	}
	return pos, nil
}

// parseCursor decodes a stored cursor value; an empty value means no cursor yet
func parseCursor(value string) (*domain.Position, error) {
	if value == "" {
		return nil, nil
	}
	pos, err := domain.ParsePosition(value)
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func writeCursor(db *gorm.DB, key string, pos domain.Position) error {
	return upsertCursor(db, key, pos.String())
}

func upsertCursor(db *gorm.DB, key string, value string) error {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&schema.KeyValueStore{
		Key:   key,
		Value: value,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to set cursor: %w", err)
	}
	return nil
}
