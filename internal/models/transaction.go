package models

import (
	"time"

	"github.com/lib/pq"
)

// Transaction types
const (
	TransactionTypeTransfer   = "TRANSFER"
	TransactionTypeWithdrawal = "WITHDRAWAL"
	TransactionTypeDeposit    = "DEPOSIT"
	TransactionTypePayment    = "PAYMENT"
)

// Transaction statuses
const (
	TransactionStatusProcessed = "processed"
	TransactionStatusFlagged   = "flagged"
	TransactionStatusBlocked   = "blocked"
)

// Transaction is a monitored financial transaction. Status starts at
// processed and is only escalated by the classification engine; manual
// overrides go through the privileged admin endpoint.
type Transaction struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Reference  string         `gorm:"uniqueIndex;not null" json:"reference"` // external reference, immutable
	Type       string         `gorm:"not null" json:"type"`
	Amount     float64        `gorm:"not null" json:"amount"`
	RiskScore  int            `gorm:"not null;default:0" json:"risk_score"`
	Status     string         `gorm:"not null;default:'processed'" json:"status"`
	Indicators pq.StringArray `gorm:"type:text[]" json:"indicators"`
	UserID     uint           `gorm:"index" json:"user_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// ValidTransactionType reports whether t is a supported transaction type.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeTransfer, TransactionTypeWithdrawal,
		TransactionTypeDeposit, TransactionTypePayment:
		return true
	}
	return false
}

// ValidTransactionStatus reports whether s is a supported status.
func ValidTransactionStatus(s string) bool {
	switch s {
	case TransactionStatusProcessed, TransactionStatusFlagged, TransactionStatusBlocked:
		return true
	}
	return false
}
