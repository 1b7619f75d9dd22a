package core

import "context"

// KV defines the contract of the persistent key-value medium notes live in.
// Adhering to this interface keeps the core independent of the underlying
// storage mechanism (files, SQLite, memory).
type KV interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the whole value stored under key.
	Set(ctx context.Context, key, value string) error

	// Initialize ensures the underlying medium is ready (directories, schema).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for media that can report external changes.
type Watchable interface {
	// Watch emits an Event whenever a key changes outside of this process.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}

// Closer is implemented by media holding resources (e.g. a database handle).
type Closer interface {
	Close() error
}
