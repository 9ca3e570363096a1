package rule

import (
	"testing"

	"vigil/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestParse_NumericConditions(t *testing.T) {
	tests := []struct {
		name      string
		ruleType  string
		condition string
		wantOp    string
		wantValue float64
		wantErr   bool
	}{
		{
			name:      "greater than",
			ruleType:  models.RuleTypeAmount,
			condition: "> 5000",
			wantOp:    OperatorGT,
			wantValue: 5000,
		},
		{
			name:      "greater or equal not mistaken for greater than",
			ruleType:  models.RuleTypeAmount,
			condition: ">= 100",
			wantOp:    OperatorGTE,
			wantValue: 100,
		},
		{
			name:      "less or equal",
			ruleType:  models.RuleTypeRiskScore,
			condition: "<= 85",
			wantOp:    OperatorLTE,
			wantValue: 85,
		},
		{
			name:      "less than",
			ruleType:  models.RuleTypeRiskScore,
			condition: "< 40",
			wantOp:    OperatorLT,
			wantValue: 40,
		},
		{
			name:      "equality",
			ruleType:  models.RuleTypeAmount,
			condition: "== 250.50",
			wantOp:    OperatorEQ,
			wantValue: 250.50,
		},
		{
			name:      "no surrounding whitespace",
			ruleType:  models.RuleTypeAmount,
			condition: ">1000",
			wantOp:    OperatorGT,
			wantValue: 1000,
		},
		{
			name:      "non-numeric threshold",
			ruleType:  models.RuleTypeAmount,
			condition: "> abc",
			wantErr:   true,
		},
		{
			name:      "missing operator",
			ruleType:  models.RuleTypeAmount,
			condition: "5000",
			wantErr:   true,
		},
		{
			name:      "empty condition",
			ruleType:  models.RuleTypeRiskScore,
			condition: "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := Parse(tt.ruleType, tt.condition)
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCondition)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantOp, pred.Operator)
			assert.Equal(t, tt.wantValue, pred.Threshold)
		})
	}
}

func TestParse_IndicatorCondition(t *testing.T) {
	pred, err := Parse(models.RuleTypeIndicator, "  Velocity  ")
	assert.NoError(t, err)
	assert.Equal(t, OperatorContains, pred.Operator)
	assert.Equal(t, "Velocity", pred.Value)
}

func TestParse_UnknownRuleType(t *testing.T) {
	_, err := Parse("geo", "> 5")
	assert.ErrorIs(t, err, ErrInvalidRuleType)
}

func TestPredicate_CompareNumber(t *testing.T) {
	pred := &Predicate{Operator: OperatorGT, Threshold: 5000}

	assert.True(t, pred.CompareNumber(5001))
	assert.False(t, pred.CompareNumber(5000), "threshold itself must not match a strict comparison")
	assert.False(t, pred.CompareNumber(4999))

	gte := &Predicate{Operator: OperatorGTE, Threshold: 5000}
	assert.True(t, gte.CompareNumber(5000))
}

func TestPredicate_MatchesIndicators(t *testing.T) {
	pred := &Predicate{Operator: OperatorContains, Value: "Velocity"}

	assert.True(t, pred.MatchesIndicators([]string{"Amount Anomaly", "Velocity"}))
	assert.False(t, pred.MatchesIndicators([]string{"Amount Anomaly"}))
	assert.False(t, pred.MatchesIndicators(nil))
}
