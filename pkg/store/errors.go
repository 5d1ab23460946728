package store

import "errors"

var (
	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("store: entry not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("store: closed")

	ErrMarshal   = errors.New("store: failed to marshal value")
	ErrUnmarshal = errors.New("store: failed to unmarshal value")
)
