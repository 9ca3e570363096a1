package models

import "time"

// Rule types
const (
	RuleTypeAmount    = "amount"
	RuleTypeRiskScore = "risk_score"
	RuleTypeIndicator = "indicator"
)

// Rule actions
const (
	RuleActionFlag  = "flag"
	RuleActionBlock = "block"
)

// Rule statuses
const (
	RuleStatusActive   = "active"
	RuleStatusInactive = "inactive"
)

// Rule is an administrator-defined classification rule. A rule may only
// be active while its condition parses against its type; TriggerCount is
// mutated exclusively by the classification engine and never decreases.
// Accuracy is maintained manually by analysts reviewing rule hits.
type Rule struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Type         string    `gorm:"not null" json:"type"`
	Condition    string    `gorm:"not null" json:"condition"`
	Action       string    `gorm:"not null" json:"action"`
	Status       string    `gorm:"not null;default:'inactive'" json:"status"`
	CreatedBy    uint      `gorm:"index" json:"created_by"`
	TriggerCount int64     `gorm:"not null;default:0" json:"trigger_count"`
	Accuracy     float64   `gorm:"not null;default:0" json:"accuracy"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRuleType reports whether t is a supported rule type.
func ValidRuleType(t string) bool {
	switch t {
	case RuleTypeAmount, RuleTypeRiskScore, RuleTypeIndicator:
		return true
	}
	return false
}

// ValidRuleAction reports whether a is a supported rule action.
func ValidRuleAction(a string) bool {
	switch a {
	case RuleActionFlag, RuleActionBlock:
		return true
	}
	return false
}
