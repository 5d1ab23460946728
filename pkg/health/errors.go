package health

import "errors"

// ErrCheckTimeout is joined into a check's error when it ran out of time.
var ErrCheckTimeout = errors.New("health: check timeout")
