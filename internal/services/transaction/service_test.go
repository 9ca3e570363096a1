package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"vigil/internal/models"
	"vigil/internal/repositories"
	"vigil/internal/services/classifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTransactionRepo) Query(ctx context.Context, filter repositories.TransactionFilter) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepo) Count(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepo) ListByStatus(ctx context.Context, status string, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, status, limit)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) ListHighRisk(ctx context.Context, minScore, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, minScore, limit)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) ListSince(ctx context.Context, since time.Time) ([]models.Transaction, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) CountBlockedByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CategoryCount), args.Error(1)
}

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Classify(ctx context.Context, tx *models.Transaction) ([]classifier.RuleEffect, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]classifier.RuleEffect), args.Error(1)
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmitRequest
		wantErr error
	}{
		{
			name:    "unknown type",
			req:     SubmitRequest{Type: "loan", Amount: 100, RiskScore: 10},
			wantErr: ErrInvalidType,
		},
		{
			name:    "negative amount",
			req:     SubmitRequest{Type: models.TransactionTypeTransfer, Amount: -1, RiskScore: 10},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "risk score above 100",
			req:     SubmitRequest{Type: models.TransactionTypeTransfer, Amount: 100, RiskScore: 101},
			wantErr: ErrInvalidRiskScore,
		},
		{
			name:    "negative risk score",
			req:     SubmitRequest{Type: models.TransactionTypeTransfer, Amount: 100, RiskScore: -1},
			wantErr: ErrInvalidRiskScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTransactionRepo)
			engine := new(MockEngine)
			svc := NewService(repo, engine)

			_, _, err := svc.Submit(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_ClassifiesAndReturnsEffects(t *testing.T) {
	repo := new(MockTransactionRepo)
	engine := new(MockEngine)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	effects := []classifier.RuleEffect{
		{RuleID: 1, RuleName: "Large transfer amount", Action: models.RuleActionFlag},
	}
	engine.On("Classify", mock.Anything, mock.Anything).Return(effects, nil)

	svc := NewService(repo, engine)
	tx, got, err := svc.Submit(context.Background(), SubmitRequest{
		Type:       models.TransactionTypeTransfer,
		Amount:     12000,
		RiskScore:  55,
		Indicators: []string{"Amount Anomaly"},
		Reference:  "TXN-123",
		UserID:     7,
	})

	assert.NoError(t, err)
	assert.Equal(t, "TXN-123", tx.Reference)
	assert.Equal(t, uint(7), tx.UserID)
	assert.Equal(t, effects, got)
	repo.AssertExpectations(t)
	engine.AssertExpectations(t)
}

func TestSubmit_GeneratesReferenceWhenMissing(t *testing.T) {
	repo := new(MockTransactionRepo)
	engine := new(MockEngine)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	engine.On("Classify", mock.Anything, mock.Anything).Return([]classifier.RuleEffect{}, nil)

	svc := NewService(repo, engine)
	tx, _, err := svc.Submit(context.Background(), SubmitRequest{
		Type:      models.TransactionTypeDeposit,
		Amount:    50,
		RiskScore: 5,
	})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(tx.Reference, "TXN-"))
	assert.Greater(t, len(tx.Reference), len("TXN-"))
}

func TestSubmit_DuplicateReference(t *testing.T) {
	repo := new(MockTransactionRepo)
	engine := new(MockEngine)
	repo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicateReference)

	svc := NewService(repo, engine)
	_, _, err := svc.Submit(context.Background(), SubmitRequest{
		Type:      models.TransactionTypePayment,
		Amount:    100,
		RiskScore: 10,
		Reference: "TXN-dup",
	})

	assert.ErrorIs(t, err, ErrDuplicateReference)
	engine.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestSubmit_ClassificationFailureSurfaces(t *testing.T) {
	repo := new(MockTransactionRepo)
	engine := new(MockEngine)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	engine.On("Classify", mock.Anything, mock.Anything).Return(nil, errors.New("rule store unavailable"))

	svc := NewService(repo, engine)
	_, _, err := svc.Submit(context.Background(), SubmitRequest{
		Type:      models.TransactionTypeWithdrawal,
		Amount:    200,
		RiskScore: 30,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "classification failed")
}

func TestGet_NotFound(t *testing.T) {
	repo := new(MockTransactionRepo)
	engine := new(MockEngine)
	repo.On("GetByID", mock.Anything, uint(99)).Return(nil, repositories.ErrNotFound)

	svc := NewService(repo, engine)
	_, err := svc.Get(context.Background(), 99)

	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestOverrideStatus(t *testing.T) {
	repo := new(MockTransactionRepo)
	engine := new(MockEngine)
	// A manual override may move a blocked transaction back down.
	repo.On("UpdateStatus", mock.Anything, uint(4), models.TransactionStatusProcessed).Return(nil)
	repo.On("GetByID", mock.Anything, uint(4)).Return(&models.Transaction{
		ID:     4,
		Status: models.TransactionStatusProcessed,
	}, nil)

	svc := NewService(repo, engine)
	tx, err := svc.OverrideStatus(context.Background(), 4, models.TransactionStatusProcessed)

	assert.NoError(t, err)
	assert.Equal(t, models.TransactionStatusProcessed, tx.Status)
	repo.AssertExpectations(t)
}

func TestOverrideStatus_InvalidStatus(t *testing.T) {
	repo := new(MockTransactionRepo)
	engine := new(MockEngine)

	svc := NewService(repo, engine)
	_, err := svc.OverrideStatus(context.Background(), 4, "quarantined")

	assert.ErrorIs(t, err, ErrInvalidStatus)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOverrideStatus_NotFound(t *testing.T) {
	repo := new(MockTransactionRepo)
	engine := new(MockEngine)
	repo.On("UpdateStatus", mock.Anything, uint(12), models.TransactionStatusFlagged).Return(repositories.ErrNotFound)

	svc := NewService(repo, engine)
	_, err := svc.OverrideStatus(context.Background(), 12, models.TransactionStatusFlagged)

	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
