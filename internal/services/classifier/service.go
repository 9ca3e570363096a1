package classifier

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"vigil/internal/models"
	"vigil/internal/services/rule"
)

// counterRetryAttempts bounds retries of a failed trigger counter update
// before the rule's effect is reported as failed.
const counterRetryAttempts = 3

// Service evaluates active rules against incoming transactions and
// applies their actions. Rules are evaluated in the order the rule store
// returns them; because status only escalates, the final status is the
// maximum severity of any matching rule regardless of that order.
type Service interface {
	Classify(ctx context.Context, tx *models.Transaction) ([]RuleEffect, error)
}

type service struct {
	rules    RuleSource
	counters CounterStore
	txStore  TransactionStore
	metrics  MetricsCollector

	mu         sync.RWMutex
	predicates map[uint]cachedPredicate
}

type cachedPredicate struct {
	ruleType  string
	condition string
	pred      *rule.Predicate
}

// NewService creates a new classification engine.
func NewService(rules RuleSource, counters CounterStore, txStore TransactionStore, metrics MetricsCollector) Service {
	if rules == nil {
		panic("rule source is required")
	}
	if counters == nil {
		panic("counter store is required")
	}
	if txStore == nil {
		panic("transaction store is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		rules:      rules,
		counters:   counters,
		txStore:    txStore,
		metrics:    metrics,
		predicates: make(map[uint]cachedPredicate),
	}
}

// Classify runs tx through all active rules, increments the trigger
// counter of each matching rule exactly once, escalates the transaction
// status per the matched actions, and persists the result. A store
// failure on rule load or on the final status write fails the whole
// classification so the caller can retry; a counter failure on a single
// rule is reported in its effect without discarding the rest.
func (s *service) Classify(ctx context.Context, tx *models.Transaction) ([]RuleEffect, error) {
	start := time.Now()

	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active rules: %w", err)
	}

	status := tx.Status
	var effects []RuleEffect

	for i := range rules {
		r := &rules[i]

		pred, err := s.predicate(r)
		if err != nil {
			// Validation keeps unparsable rules inactive; anything that
			// slips through is skipped without affecting the outcome.
			log.Printf("skipping rule %d (%s): %v", r.ID, r.Name, err)
			continue
		}
		if !matches(r.Type, pred, tx) {
			continue
		}

		if err := s.incrementCounter(ctx, r.ID); err != nil {
			log.Printf("trigger counter update failed for rule %d (%s): %v", r.ID, r.Name, err)
			s.metrics.RecordCounterFailure(r.Name)
			effects = append(effects, RuleEffect{
				RuleID:   r.ID,
				RuleName: r.Name,
				Action:   r.Action,
				Failed:   true,
				Error:    err.Error(),
			})
			continue
		}

		status = escalate(status, r.Action)
		s.metrics.RecordRuleTrigger(r.Name, r.Action)
		effects = append(effects, RuleEffect{
			RuleID:   r.ID,
			RuleName: r.Name,
			Action:   r.Action,
		})
	}

	if status != tx.Status {
		if err := s.txStore.UpdateStatus(ctx, tx.ID, status); err != nil {
			return nil, fmt.Errorf("failed to persist transaction status: %w", err)
		}
		tx.Status = status
	}

	s.metrics.RecordClassification(tx.Status, time.Since(start))
	return effects, nil
}

func (s *service) incrementCounter(ctx context.Context, ruleID uint) error {
	var err error
	for attempt := 0; attempt < counterRetryAttempts; attempt++ {
		if err = s.counters.IncrementTriggerCount(ctx, ruleID); err == nil {
			return nil
		}
	}
	return err
}

// predicate returns the cached predicate for r, re-parsing only when the
// rule's type or condition text changed since it was last seen.
func (s *service) predicate(r *models.Rule) (*rule.Predicate, error) {
	s.mu.RLock()
	cached, ok := s.predicates[r.ID]
	s.mu.RUnlock()
	if ok && cached.ruleType == r.Type && cached.condition == r.Condition {
		return cached.pred, nil
	}

	pred, err := rule.Parse(r.Type, r.Condition)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.predicates[r.ID] = cachedPredicate{ruleType: r.Type, condition: r.Condition, pred: pred}
	s.mu.Unlock()
	return pred, nil
}

func matches(ruleType string, pred *rule.Predicate, tx *models.Transaction) bool {
	switch ruleType {
	case models.RuleTypeAmount:
		return pred.CompareNumber(tx.Amount)
	case models.RuleTypeRiskScore:
		return pred.CompareNumber(float64(tx.RiskScore))
	case models.RuleTypeIndicator:
		return pred.MatchesIndicators(tx.Indicators)
	}
	return false
}

// escalate applies an action under the monotonic severity policy: flag
// never downgrades a block, block always wins.
func escalate(current, action string) string {
	switch action {
	case models.RuleActionBlock:
		return models.TransactionStatusBlocked
	case models.RuleActionFlag:
		if current == models.TransactionStatusBlocked {
			return current
		}
		return models.TransactionStatusFlagged
	}
	return current
}
