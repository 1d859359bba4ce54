// Package kvstore persists named JSON blobs to a local key-value store.
//
// Loads are tolerant by contract: an absent or corrupt blob yields the
// caller's default instead of an error, and each key is stored independently
// so one bad blob never poisons the others.
package kvstore

// Store is the persistence adapter used for every durable blob.
type Store interface {
	// Load decodes the blob stored under key into out. It returns false and
	// leaves out untouched when the key is absent or the payload cannot be
	// decoded; corruption is logged, never surfaced.
	Load(key string, out any) bool

	// Save serializes v and stores it under key. Callers treat a failure as
	// non-fatal: in-memory state stays correct, the write is simply lost.
	Save(key string, v any) error

	Close() error
}
