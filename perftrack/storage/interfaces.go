// Package storage defines the key/value capability the perf client persists
// identity state through, plus in-memory and file-backed implementations.
//
// Both persistence scopes the pipeline needs (durable device state, per-run
// session state) are modeled behind the same interface so the rest of the
// client never special-cases storage failures inline: a failed read is a miss,
// a failed write is silence.
package storage

// KVStore is a fallible string key/value store.
type KVStore interface {
	// Get returns the stored value and whether it was present. Unreadable
	// backends report a miss, never an error.
	Get(key string) (string, bool)

	// Set stores a value best-effort. Write failures are swallowed.
	Set(key string, value string)
}
