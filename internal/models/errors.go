package models

import "errors"

// Custom errors
var (
	ErrInvalidInput    = errors.New("invalid input record")
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateKey    = errors.New("duplicate key violation")
	ErrFeedUnavailable = errors.New("odds feed unavailable")
)
