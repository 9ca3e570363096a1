package repositories

import "errors"

// Repository errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateReference = errors.New("duplicate transaction reference")
)
