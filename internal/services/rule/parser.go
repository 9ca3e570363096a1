package rule

import (
	"fmt"
	"strconv"
	"strings"

	"vigil/internal/models"
)

// Two-character operators come first: ">=" must match before ">" or
// splitting the condition would leave "= 100" as the threshold.
var comparisonOperators = []string{OperatorGTE, OperatorLTE, OperatorEQ, OperatorGT, OperatorLT}

// Parse turns a rule's textual condition into a Predicate. Parsing is
// pure; the result may be cached for the lifetime of the condition text.
// A condition that does not parse keeps its rule inactive, so the error
// carries enough detail to surface to the administrator.
func Parse(ruleType, condition string) (*Predicate, error) {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return nil, fmt.Errorf("%w: condition is empty", ErrInvalidCondition)
	}

	switch ruleType {
	case models.RuleTypeAmount, models.RuleTypeRiskScore:
		return parseComparison(condition)
	case models.RuleTypeIndicator:
		return &Predicate{Operator: OperatorContains, Value: condition}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidRuleType, ruleType)
	}
}

func parseComparison(condition string) (*Predicate, error) {
	for _, op := range comparisonOperators {
		if !strings.HasPrefix(condition, op) {
			continue
		}
		raw := strings.TrimSpace(strings.TrimPrefix(condition, op))
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: threshold %q is not numeric", ErrInvalidCondition, raw)
		}
		return &Predicate{Operator: op, Threshold: threshold}, nil
	}
	return nil, fmt.Errorf("%w: no comparison operator in %q", ErrInvalidCondition, condition)
}
