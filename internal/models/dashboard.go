package models

import "time"

// Dashboard view types. These are derived on demand from the transaction
// store and never persisted.

// SummaryStats is the headline dashboard panel. Prevented and Savings are
// business approximations, not exact accounting figures: Prevented is a
// fixed 87.5% of the blocked count and Savings sums the amounts of the
// first Prevented blocked transactions in store order.
type SummaryStats struct {
	TotalTransactions int64   `json:"total_transactions"`
	FlaggedCount      int64   `json:"flagged_count"`
	BlockedCount      int64   `json:"blocked_count"`
	PreventedCount    int64   `json:"prevented_count"`
	EstimatedSavings  float64 `json:"estimated_savings"`
}

// Alert is one entry in the high-risk feed.
type Alert struct {
	ID         uint      `json:"id"`
	Reference  string    `json:"reference"`
	Type       string    `json:"type"`
	Amount     float64   `json:"amount"`
	RiskScore  int       `json:"risk_score"`
	Status     string    `json:"status"`
	Indicators []string  `json:"indicators"`
	Age        string    `json:"age"` // human-readable, e.g. "5 minutes ago"
	CreatedAt  time.Time `json:"created_at"`
}

// VolumeBucket is one time bucket of transaction volume.
type VolumeBucket struct {
	Label      string `json:"label"`
	Total      int    `json:"total"`
	Fraudulent int    `json:"fraudulent"` // risk score above the alert threshold
}

// CategoryCount is one slice of the blocked-transaction breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// TransactionPage is a filtered, paginated transaction listing.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Total        int64         `json:"total"`
	Page         int           `json:"page"`
	Limit        int           `json:"limit"`
	Pages        int           `json:"pages"`
}
