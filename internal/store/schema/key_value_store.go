package schema

import "time"

// KeyValueStore stores small pieces of indexer state keyed by name.
// Projection cursors live here under "projection_cursor:<chain>:<contract>".
type KeyValueStore struct {
	// Key is the state key
	Key string `gorm:"column:key;primaryKey;type:text"`
	// Value is the encoded state, "<block>:<logIndex>" for cursors
	Value string `gorm:"column:value;type:text;not null"`
	// CreatedAt is the timestamp when this key was first written
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	// UpdatedAt is the timestamp when this key was last written
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for the KeyValueStore model
func (KeyValueStore) TableName() string {
	return "key_value_store"
}
