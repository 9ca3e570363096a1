package transaction

import "errors"

// Service errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateReference  = errors.New("duplicate transaction reference")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidAmount       = errors.New("transaction amount must not be negative")
	ErrInvalidRiskScore    = errors.New("risk score must be between 0 and 100")
	ErrInvalidStatus       = errors.New("invalid transaction status")
)
