package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vigil/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a GORM-backed transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).First(&tx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update transaction status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *transactionRepository) Query(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Transaction{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.MinRisk != nil {
		q = q.Where("risk_score >= ?", *filter.MinRisk)
	}
	if filter.MaxRisk != nil {
		q = q.Where("risk_score <= ?", *filter.MaxRisk)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txs []models.Transaction
	err := q.Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	return txs, total, nil
}

func (r *transactionRepository) Count(ctx context.Context, status string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Transaction{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *transactionRepository) ListByStatus(ctx context.Context, status string, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func (r *transactionRepository) ListHighRisk(ctx context.Context, minScore, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("risk_score > ?", minScore).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list high risk transactions: %w", err)
	}
	return txs, nil
}

func (r *transactionRepository) ListSince(ctx context.Context, since time.Time) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions since %s: %w", since, err)
	}
	return txs, nil
}

func (r *transactionRepository) CountBlockedByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	var results []models.CategoryCount
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("COALESCE(indicators[1], 'Other') as category, COUNT(*) as count").
		Where("status = ?", models.TransactionStatusBlocked).
		Group("category").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group blocked transactions: %w", err)
	}
	return results, nil
}
