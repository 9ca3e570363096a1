package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vigil/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	activeRulesKey = "rules:active"
	summaryKey     = "dashboard:summary"
)

// Service is a Redis-backed cache for hot read paths: the active rule
// list consulted on every classification and the dashboard summary.
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

func NewService(client *redis.Client, defaultTTL time.Duration) *Service {
	return &Service{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *Service) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *Service) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get fills dest from the cache and reports whether the key was found.
func (s *Service) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *Service) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Active rule caching. The rule list changes rarely and is read on every
// classification; a short TTL bounds staleness after rule edits.

func (s *Service) GetActiveRules(ctx context.Context) ([]models.Rule, bool, error) {
	var rules []models.Rule
	found, err := s.Get(ctx, activeRulesKey, &rules)
	return rules, found, err
}

func (s *Service) SetActiveRules(ctx context.Context, rules []models.Rule) error {
	return s.Set(ctx, activeRulesKey, rules)
}

func (s *Service) InvalidateActiveRules(ctx context.Context) error {
	return s.Delete(ctx, activeRulesKey)
}

// Dashboard summary caching.

func (s *Service) GetSummary(ctx context.Context) (*models.SummaryStats, bool, error) {
	var stats models.SummaryStats
	found, err := s.Get(ctx, summaryKey, &stats)
	if !found || err != nil {
		return nil, found, err
	}
	return &stats, true, nil
}

func (s *Service) SetSummary(ctx context.Context, stats *models.SummaryStats, ttl time.Duration) error {
	return s.SetWithTTL(ctx, summaryKey, stats, ttl)
}

func (s *Service) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *Service) Close() error {
	return s.client.Close()
}
