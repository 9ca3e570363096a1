package transaction

import (
	"context"
	"errors"
	"fmt"

	"vigil/internal/models"
	"vigil/internal/repositories"
	"vigil/internal/services/classifier"

	"github.com/google/uuid"
)

// SubmitRequest is an incoming transaction to be ingested and classified.
type SubmitRequest struct {
	Type       string   `json:"type"`
	Amount     float64  `json:"amount"`
	RiskScore  int      `json:"risk_score"`
	Indicators []string `json:"indicators"`
	Reference  string   `json:"reference"`
	UserID     uint     `json:"-"`
}

// Service ingests transactions and runs them through the classification
// engine. OverrideStatus is the privileged manual path and is not bound
// by the engine's escalation policy.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*models.Transaction, []classifier.RuleEffect, error)
	Get(ctx context.Context, id uint) (*models.Transaction, error)
	OverrideStatus(ctx context.Context, id uint, status string) (*models.Transaction, error)
}

type service struct {
	repo   repositories.TransactionRepository
	engine classifier.Service
}

// NewService creates a new transaction ingestion service.
func NewService(repo repositories.TransactionRepository, engine classifier.Service) Service {
	if repo == nil {
		panic("transaction repository is required")
	}
	if engine == nil {
		panic("classification engine is required")
	}
	return &service{repo: repo, engine: engine}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*models.Transaction, []classifier.RuleEffect, error) {
	if !models.ValidTransactionType(req.Type) {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidType, req.Type)
	}
	if req.Amount < 0 {
		return nil, nil, ErrInvalidAmount
	}
	if req.RiskScore < 0 || req.RiskScore > 100 {
		return nil, nil, ErrInvalidRiskScore
	}

	reference := req.Reference
	if reference == "" {
		reference = "TXN-" + uuid.NewString()
	}

	tx := &models.Transaction{
		Reference:  reference,
		Type:       req.Type,
		Amount:     req.Amount,
		RiskScore:  req.RiskScore,
		Status:     models.TransactionStatusProcessed,
		Indicators: req.Indicators,
		UserID:     req.UserID,
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		if errors.Is(err, repositories.ErrDuplicateReference) {
			return nil, nil, ErrDuplicateReference
		}
		return nil, nil, err
	}

	effects, err := s.engine.Classify(ctx, tx)
	if err != nil {
		return nil, nil, fmt.Errorf("classification failed for %s: %w", tx.Reference, err)
	}

	return tx, effects, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// OverrideStatus writes any valid status, including de-escalations.
// Access control is the caller's responsibility.
func (s *service) OverrideStatus(ctx context.Context, id uint, status string) (*models.Transaction, error) {
	if !models.ValidTransactionStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
