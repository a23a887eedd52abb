package idempotency

import "errors"

var (
	ErrKeyNotFound      = errors.New("idempotency key not found")
	ErrInProgress       = errors.New("operation with this idempotency key is already in progress")
	ErrEndpointMismatch = errors.New("idempotency key was already used for a different operation")
)
