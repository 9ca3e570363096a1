package rule

import (
	"context"
	"testing"

	"vigil/internal/models"
	"vigil/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRuleRepo struct {
	mock.Mock
}

func (m *MockRuleRepo) Create(ctx context.Context, rule *models.Rule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepo) Update(ctx context.Context, rule *models.Rule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepo) GetByID(ctx context.Context, id uint) (*models.Rule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rule), args.Error(1)
}

func (m *MockRuleRepo) List(ctx context.Context) ([]models.Rule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Rule), args.Error(1)
}

func (m *MockRuleRepo) ListActive(ctx context.Context) ([]models.Rule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Rule), args.Error(1)
}

func (m *MockRuleRepo) IncrementTriggerCount(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRuleCache struct {
	mock.Mock
}

func (m *MockRuleCache) GetActiveRules(ctx context.Context) ([]models.Rule, bool, error) {
	args := m.Called(ctx)
	var rules []models.Rule
	if args.Get(0) != nil {
		rules = args.Get(0).([]models.Rule)
	}
	return rules, args.Bool(1), args.Error(2)
}

func (m *MockRuleCache) SetActiveRules(ctx context.Context, rules []models.Rule) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

func (m *MockRuleCache) InvalidateActiveRules(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestRuleService_Create(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name: "valid active amount rule",
			req:  CreateRequest{Name: "Large transfer", Type: models.RuleTypeAmount, Condition: "> 5000", Action: models.RuleActionBlock, Active: true},
		},
		{
			name:    "unparsable condition rejected",
			req:     CreateRequest{Name: "Broken", Type: models.RuleTypeAmount, Condition: "> abc", Action: models.RuleActionBlock, Active: true},
			wantErr: ErrInvalidCondition,
		},
		{
			name:    "missing name",
			req:     CreateRequest{Type: models.RuleTypeAmount, Condition: "> 5000", Action: models.RuleActionFlag},
			wantErr: ErrNameRequired,
		},
		{
			name:    "unknown type",
			req:     CreateRequest{Name: "Geo", Type: "geo", Condition: "> 5000", Action: models.RuleActionFlag},
			wantErr: ErrInvalidRuleType,
		},
		{
			name:    "unknown action",
			req:     CreateRequest{Name: "Review", Type: models.RuleTypeAmount, Condition: "> 5000", Action: "review"},
			wantErr: ErrInvalidAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRuleRepo)
			cache := new(MockRuleCache)
			svc := NewService(repo, cache)

			if tt.wantErr == nil {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
				cache.On("InvalidateActiveRules", mock.Anything).Return(nil)
			}

			r, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, models.RuleStatusActive, r.Status)
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestRuleService_Create_InactiveByDefault(t *testing.T) {
	repo := new(MockRuleRepo)
	cache := new(MockRuleCache)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	cache.On("InvalidateActiveRules", mock.Anything).Return(nil)

	svc := NewService(repo, cache)
	r, err := svc.Create(context.Background(), CreateRequest{
		Name: "Draft", Type: models.RuleTypeIndicator, Condition: "Velocity", Action: models.RuleActionFlag,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RuleStatusInactive, r.Status)
}

func TestRuleService_Update(t *testing.T) {
	existing := &models.Rule{
		ID: 7, Name: "Large transfer", Type: models.RuleTypeAmount,
		Condition: "> 5000", Action: models.RuleActionFlag, Status: models.RuleStatusActive,
	}

	t.Run("condition update revalidated", func(t *testing.T) {
		repo := new(MockRuleRepo)
		cache := new(MockRuleCache)
		repo.On("GetByID", mock.Anything, uint(7)).Return(existing, nil)

		svc := NewService(repo, cache)
		bad := "> abc"
		_, err := svc.Update(context.Background(), 7, UpdateRequest{Condition: &bad})

		assert.ErrorIs(t, err, ErrInvalidCondition)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("valid update invalidates cache", func(t *testing.T) {
		repo := new(MockRuleRepo)
		cache := new(MockRuleCache)
		fresh := *existing
		repo.On("GetByID", mock.Anything, uint(7)).Return(&fresh, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)
		cache.On("InvalidateActiveRules", mock.Anything).Return(nil)

		svc := NewService(repo, cache)
		cond := ">= 7500"
		r, err := svc.Update(context.Background(), 7, UpdateRequest{Condition: &cond})

		assert.NoError(t, err)
		assert.Equal(t, ">= 7500", r.Condition)
		cache.AssertExpectations(t)
	})

	t.Run("missing rule", func(t *testing.T) {
		repo := new(MockRuleRepo)
		cache := new(MockRuleCache)
		repo.On("GetByID", mock.Anything, uint(99)).Return(nil, repositories.ErrNotFound)

		svc := NewService(repo, cache)
		name := "Renamed"
		_, err := svc.Update(context.Background(), 99, UpdateRequest{Name: &name})

		assert.ErrorIs(t, err, ErrRuleNotFound)
	})
}

func TestRuleService_ListActive(t *testing.T) {
	active := []models.Rule{{ID: 1, Name: "Large transfer", Status: models.RuleStatusActive}}

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(MockRuleRepo)
		cache := new(MockRuleCache)
		cache.On("GetActiveRules", mock.Anything).Return(active, true, nil)

		svc := NewService(repo, cache)
		rules, err := svc.ListActive(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, active, rules)
		repo.AssertNotCalled(t, "ListActive", mock.Anything)
	})

	t.Run("cache miss falls back and repopulates", func(t *testing.T) {
		repo := new(MockRuleRepo)
		cache := new(MockRuleCache)
		cache.On("GetActiveRules", mock.Anything).Return(nil, false, nil)
		repo.On("ListActive", mock.Anything).Return(active, nil)
		cache.On("SetActiveRules", mock.Anything, active).Return(nil)

		svc := NewService(repo, cache)
		rules, err := svc.ListActive(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, active, rules)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}
