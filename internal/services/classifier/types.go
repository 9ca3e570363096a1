package classifier

import "time"

// RuleEffect records one rule that matched a transaction, for auditing
// and for the ingestion response. Failed effects mark rules whose
// trigger counter could not be updated; their action was not applied.
type RuleEffect struct {
	RuleID   uint   `json:"rule_id"`
	RuleName string `json:"rule_name"`
	Action   string `json:"action"`
	Failed   bool   `json:"failed,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordClassification(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordRuleTrigger(string, string)           {}
func (n *NoopMetricsCollector) RecordCounterFailure(string)                {}
