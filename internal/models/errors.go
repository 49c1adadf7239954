package models

import "errors"

// Custom errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateKey       = errors.New("duplicate key violation")
	ErrInvalidID          = errors.New("invalid ID format")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRateLimited        = errors.New("daily request limit exceeded")
	ErrKeyInactive        = errors.New("invalid or inactive API key")
)
