package user

import "errors"

var (
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrInvalidToken            = errors.New("invalid token")
)
