package repositories

import (
	"context"
	"time"

	"vigil/internal/models"
)

// TransactionFilter narrows a paged transaction query. Zero values mean
// no filtering on that dimension.
type TransactionFilter struct {
	Status  string
	MinRisk *int
	MaxRisk *int
	Offset  int
	Limit   int
}

// TransactionRepository provides access to the transaction store.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, id uint, status string) error

	// Query returns a page sorted by creation time descending plus the
	// total matching count.
	Query(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int64, error)

	// Count counts transactions with the given status; empty status
	// counts everything.
	Count(ctx context.Context, status string) (int64, error)

	// ListByStatus returns up to limit transactions in store order
	// (insertion order).
	ListByStatus(ctx context.Context, status string, limit int) ([]models.Transaction, error)

	// ListHighRisk returns the newest transactions with risk score
	// strictly above minScore.
	ListHighRisk(ctx context.Context, minScore, limit int) ([]models.Transaction, error)

	// ListSince returns all transactions created at or after since.
	ListSince(ctx context.Context, since time.Time) ([]models.Transaction, error)

	// CountBlockedByCategory groups blocked transactions by their first
	// indicator, with "Other" for transactions that carry none.
	CountBlockedByCategory(ctx context.Context) ([]models.CategoryCount, error)
}
