package rule

import "errors"

// Service errors
var (
	ErrInvalidCondition = errors.New("invalid rule condition")
	ErrInvalidRuleType  = errors.New("invalid rule type")
	ErrInvalidAction    = errors.New("invalid rule action")
	ErrNameRequired     = errors.New("rule name is required")
	ErrRuleNotFound     = errors.New("rule not found")
)
