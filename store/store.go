// Package store provides the key-value backends the session engine and
// other stateful middleware persist into.
package store

import "context"

// Store is a generic key-value engine where the key is a string (such as a
// session ID or token) and the value is opaque binary or text.
type Store interface {
	// Delete removes the specific entry (by id) from the store.
	Delete(ctx context.Context, id string) error

	// Exists returns true if the key exists.
	Exists(ctx context.Context, id string) (bool, error)

	// Get retrieves raw data as []byte for the given id (key).
	Get(ctx context.Context, id string) ([]byte, error)

	// GetString retrieves the string value for the given id.
	GetString(ctx context.Context, id string) (string, error)

	// Set saves or updates a value for the given id, renewing its
	// expiration.
	Set(ctx context.Context, id string, val []byte) error

	// SetString stores a string value as bytes.
	SetString(ctx context.Context, id string, val string) error

	// Start initializes the store.
	Start(ctx context.Context) error

	// Stop tears down resources.
	Stop(ctx context.Context) error

	// Touch renews the entry's ttl, typically to implement sliding
	// expiration. It does not modify the entry data. Returns an error if
	// the id does not exist.
	Touch(ctx context.Context, id string) error

	// Purge removes expired entries. Backends with native expiration may
	// implement it as a no-op.
	Purge(ctx context.Context) error
}
