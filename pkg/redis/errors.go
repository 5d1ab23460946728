package redis

import "errors"

// Errors returned while opening or probing the template store connection.
var (
	ErrEmptyConnectionURL = errors.New("redis: REDIS_URL is empty")
	ErrFailedToParseURL   = errors.New("redis: invalid REDIS_URL")
	ErrConnectionFailed   = errors.New("redis: template store unreachable")
	ErrHealthcheckFailed  = errors.New("redis: template store ping failed")
)
