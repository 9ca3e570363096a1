package rule

import (
	"context"
	"errors"
	"fmt"
	"log"

	"vigil/internal/models"
	"vigil/internal/repositories"
)

// Service manages classification rules. A rule's condition must parse
// against its type before the rule may become active; bad conditions are
// rejected here so the classification engine never sees them.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*models.Rule, error)
	Update(ctx context.Context, id uint, req UpdateRequest) (*models.Rule, error)
	List(ctx context.Context) ([]models.Rule, error)

	// ListActive returns active rules in stable creation order,
	// served from the cache when warm.
	ListActive(ctx context.Context) ([]models.Rule, error)
}

// RuleCache is the cache surface the service needs. Cache failures are
// logged and bypassed, never surfaced to callers.
type RuleCache interface {
	GetActiveRules(ctx context.Context) ([]models.Rule, bool, error)
	SetActiveRules(ctx context.Context, rules []models.Rule) error
	InvalidateActiveRules(ctx context.Context) error
}

type service struct {
	repo  repositories.RuleRepository
	cache RuleCache
}

// NewService creates a new rule service.
func NewService(repo repositories.RuleRepository, cache RuleCache) Service {
	if repo == nil {
		panic("rule repository is required")
	}
	if cache == nil {
		panic("rule cache is required")
	}
	return &service{repo: repo, cache: cache}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Rule, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if !models.ValidRuleAction(req.Action) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, req.Action)
	}
	if !models.ValidRuleType(req.Type) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRuleType, req.Type)
	}
	if _, err := Parse(req.Type, req.Condition); err != nil {
		return nil, err
	}

	status := models.RuleStatusInactive
	if req.Active {
		status = models.RuleStatusActive
	}

	r := &models.Rule{
		Name:      req.Name,
		Type:      req.Type,
		Condition: req.Condition,
		Action:    req.Action,
		Status:    status,
		CreatedBy: req.CreatedBy,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return r, nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateRequest) (*models.Rule, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrNameRequired
		}
		r.Name = *req.Name
	}
	if req.Type != nil {
		if !models.ValidRuleType(*req.Type) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRuleType, *req.Type)
		}
		r.Type = *req.Type
	}
	if req.Condition != nil {
		r.Condition = *req.Condition
	}
	if req.Action != nil {
		if !models.ValidRuleAction(*req.Action) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAction, *req.Action)
		}
		r.Action = *req.Action
	}
	if req.Status != nil {
		if *req.Status != models.RuleStatusActive && *req.Status != models.RuleStatusInactive {
			return nil, fmt.Errorf("invalid rule status: %q", *req.Status)
		}
		r.Status = *req.Status
	}
	if req.Accuracy != nil {
		if *req.Accuracy < 0 || *req.Accuracy > 1 {
			return nil, fmt.Errorf("accuracy must be between 0 and 1")
		}
		r.Accuracy = *req.Accuracy
	}

	// The resulting rule must still parse; a broken condition is
	// rejected here rather than silently skipped during evaluation.
	if _, err := Parse(r.Type, r.Condition); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return r, nil
}

func (s *service) List(ctx context.Context) ([]models.Rule, error) {
	return s.repo.List(ctx)
}

func (s *service) ListActive(ctx context.Context) ([]models.Rule, error) {
	if rules, found, err := s.cache.GetActiveRules(ctx); err == nil && found {
		return rules, nil
	} else if err != nil {
		log.Printf("active rule cache read failed: %v", err)
	}

	rules, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetActiveRules(ctx, rules); err != nil {
		log.Printf("active rule cache write failed: %v", err)
	}
	return rules, nil
}

func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateActiveRules(ctx); err != nil {
		log.Printf("active rule cache invalidation failed: %v", err)
	}
}
