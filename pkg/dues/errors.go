package dues

import "errors"

var (
	// ErrClientNotFound is returned when no client has the requested id.
	ErrClientNotFound = errors.New("dues: client not found")

	// ErrInvalidFixture is returned when fixture data cannot be loaded.
	ErrInvalidFixture = errors.New("dues: invalid fixture")
)
