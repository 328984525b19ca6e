package db

import "errors"

// Shared storage errors used across implementations
var (
	ErrEmptyKey      = errors.New("storage key cannot be empty")
	ErrUnknownDriver = errors.New("unknown storage driver")
)
