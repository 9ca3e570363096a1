package rule

// Comparison operators for numeric predicates. OperatorContains is the
// only operator indicator predicates use.
const (
	OperatorGT       = ">"
	OperatorGTE      = ">="
	OperatorLT       = "<"
	OperatorLTE      = "<="
	OperatorEQ       = "=="
	OperatorContains = "contains"
)

// Predicate is the parsed, structured form of a rule condition. Numeric
// rules carry an operator and threshold; indicator rules carry the label
// the transaction's indicator list must contain.
type Predicate struct {
	Operator  string
	Threshold float64
	Value     string
}

// CompareNumber evaluates a numeric predicate against v.
func (p *Predicate) CompareNumber(v float64) bool {
	switch p.Operator {
	case OperatorGT:
		return v > p.Threshold
	case OperatorGTE:
		return v >= p.Threshold
	case OperatorLT:
		return v < p.Threshold
	case OperatorLTE:
		return v <= p.Threshold
	case OperatorEQ:
		return v == p.Threshold
	}
	return false
}

// MatchesIndicators reports whether the predicate's label appears in the
// indicator list.
func (p *Predicate) MatchesIndicators(indicators []string) bool {
	if p.Operator != OperatorContains {
		return false
	}
	for _, ind := range indicators {
		if ind == p.Value {
			return true
		}
	}
	return false
}

// CreateRequest carries the fields for a new rule.
type CreateRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Condition string `json:"condition"`
	Action    string `json:"action"`
	Active    bool   `json:"active"`
	CreatedBy uint   `json:"-"`
}

// UpdateRequest carries optional field updates for an existing rule.
// Nil fields are left unchanged.
type UpdateRequest struct {
	Name      *string  `json:"name"`
	Type      *string  `json:"type"`
	Condition *string  `json:"condition"`
	Action    *string  `json:"action"`
	Status    *string  `json:"status"`
	Accuracy  *float64 `json:"accuracy"`
}
