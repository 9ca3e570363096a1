package classifier

import (
	"context"
	"time"

	"vigil/internal/models"
)

// RuleSource supplies active rules in stable creation order.
type RuleSource interface {
	ListActive(ctx context.Context) ([]models.Rule, error)
}

// CounterStore persists rule trigger counters. Increment must be atomic
// per rule so concurrent classifications of distinct transactions never
// lose counts.
type CounterStore interface {
	IncrementTriggerCount(ctx context.Context, id uint) error
}

// TransactionStore persists the classified status.
type TransactionStore interface {
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// MetricsCollector records classification metrics.
type MetricsCollector interface {
	RecordClassification(status string, duration time.Duration)
	RecordRuleTrigger(ruleName, action string)
	RecordCounterFailure(ruleName string)
}
