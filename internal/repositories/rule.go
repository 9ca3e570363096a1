package repositories

import (
	"context"

	"vigil/internal/models"
)

// RuleRepository provides access to the rule store.
type RuleRepository interface {
	Create(ctx context.Context, rule *models.Rule) error
	Update(ctx context.Context, rule *models.Rule) error
	GetByID(ctx context.Context, id uint) (*models.Rule, error)
	List(ctx context.Context) ([]models.Rule, error)

	// ListActive returns active rules in creation order. The order is
	// stable so classification is deterministic.
	ListActive(ctx context.Context) ([]models.Rule, error)

	// IncrementTriggerCount atomically adds one to the rule's trigger
	// counter. Concurrent increments for distinct transactions must not
	// be lost.
	IncrementTriggerCount(ctx context.Context, id uint) error
}
