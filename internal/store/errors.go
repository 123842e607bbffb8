package store

import "errors"

var (
	// ErrCacheMiss is returned when no entry exists for a cache key.
	ErrCacheMiss = errors.New("cache miss")

	// ErrNotFound is returned when an outbox entry id does not exist.
	ErrNotFound = errors.New("pending request not found")
)
