package database

import "context"

// StorageKey is the fixed key the whole document lives under, regardless of
// backend.
const StorageKey = "jeeprep:state"

// KV is the minimal key-value surface the document store needs. Every backend
// holds the complete serialized document under a single key; Set replaces the
// value in one write.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the value, replacing any previous one.
	Set(ctx context.Context, key string, value []byte) error
	// Close releases backend resources.
	Close() error
}
