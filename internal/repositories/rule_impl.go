package repositories

import (
	"context"
	"errors"
	"fmt"

	"vigil/internal/models"

	"gorm.io/gorm"
)

type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository creates a GORM-backed rule repository.
func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) Create(ctx context.Context, rule *models.Rule) error {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}
	return nil
}

func (r *ruleRepository) Update(ctx context.Context, rule *models.Rule) error {
	if err := r.db.WithContext(ctx).Save(rule).Error; err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}
	return nil
}

func (r *ruleRepository) GetByID(ctx context.Context, id uint) (*models.Rule, error) {
	var rule models.Rule
	if err := r.db.WithContext(ctx).First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return &rule, nil
}

func (r *ruleRepository) List(ctx context.Context) ([]models.Rule, error) {
	var rules []models.Rule
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return rules, nil
}

func (r *ruleRepository) ListActive(ctx context.Context) ([]models.Rule, error) {
	var rules []models.Rule
	err := r.db.WithContext(ctx).
		Where("status = ?", models.RuleStatusActive).
		Order("created_at ASC, id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active rules: %w", err)
	}
	return rules, nil
}

// IncrementTriggerCount uses a database-side expression update so the
// read-modify-write is atomic per rule even under concurrent classifiers.
func (r *ruleRepository) IncrementTriggerCount(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Rule{}).
		Where("id = ?", id).
		UpdateColumn("trigger_count", gorm.Expr("trigger_count + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("failed to increment trigger count: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
