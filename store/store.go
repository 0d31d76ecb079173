// Package store defines the durable key-value port the draft engine writes
// through, plus the concrete backends: in-memory, one-JSON-file-per-key on
// disk, and SQL (PostgreSQL or embedded SQLite).
//
// Backends are honest about failures and return errors; the engine wraps
// them in an adapter that degrades instead of propagating. Keys under the
// draft namespace are overwrite-only: last writer wins, no locking.
package store

import "errors"

var (
	// ErrNotFound is returned by Get when no draft exists for the key.
	ErrNotFound = errors.New("draft not found")
	// ErrStoreClosed is returned after Close on backends that hold resources.
	ErrStoreClosed = errors.New("store is closed")
)

// Store is the durable key-value port.
type Store interface {
	// Get returns the draft stored under key, or ErrNotFound.
	Get(key string) (*Draft, error)
	// Set overwrites the draft stored under key.
	Set(key string, d *Draft) error
	// Remove deletes the draft under key. Removing an absent key is not an error.
	Remove(key string) error
	// Keys lists every key currently present in the store.
	Keys() ([]string, error)
}

// Purger is an optional fast path for retention: backends that can delete
// expired drafts in one operation implement it (the SQL store does).
type Purger interface {
	PurgeOlderThan(cutoffMillis int64) (int, error)
}
