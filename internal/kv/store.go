// Package kv implements the persistence contract the rest of the system is
// written against: a handful of logical keys, each holding one JSON document.
// Backends must make Write atomic across all entries it is given; services
// rely on that to keep multi-entity effects all-or-nothing.
package kv

import "context"

// Entry pairs a logical key with the document to store under it. Value must
// be JSON-serializable.
type Entry struct {
	Key   string
	Value any
}

type Store interface {
	// Get unmarshals the document at key into dest. Returns false and leaves
	// dest untouched when the key is absent, so callers keep their defaults.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Write persists every entry or none of them.
	Write(ctx context.Context, entries ...Entry) error

	Ping(ctx context.Context) error
	Close() error
}
