package services

import "errors"

var (
	// ErrInvalidRequest marks input that fails boundary validation (client error).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrEngine marks unexpected failures such as unreadable reference data.
	ErrEngine = errors.New("engine error")
)
