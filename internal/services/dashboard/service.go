package dashboard

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"vigil/internal/models"
	"vigil/internal/repositories"
)

const (
	// highRiskScore is the exclusive lower bound for the alert feed and
	// the "fraudulent" sub-counts in volume buckets.
	highRiskScore = 80

	// preventedFactor estimates how many blocked transactions were true
	// fraud. It is a business approximation the dashboard has always
	// shown; do not "correct" it.
	preventedFactor = 0.875

	alertFeedLimit   = 10
	categoryLimit    = 5
	summaryCacheTTL  = 30 * time.Second
	defaultPageLimit = 10
)

// Risk tiers for the transaction listing filter.
const (
	RiskLevelHigh   = "high"   // risk score > 75
	RiskLevelMedium = "medium" // 40 <= risk score <= 75
	RiskLevelLow    = "low"    // risk score < 40
)

// Service computes dashboard views from the transaction store. All
// operations are read-only snapshots; they never mutate state.
type Service interface {
	GetSummary(ctx context.Context) (*models.SummaryStats, error)
	GetAlerts(ctx context.Context) ([]models.Alert, error)
	GetVolume(ctx context.Context, timeframe string) ([]models.VolumeBucket, error)
	GetCategories(ctx context.Context) ([]models.CategoryCount, error)
	ListTransactions(ctx context.Context, status, riskLevel string, page, limit int) (*models.TransactionPage, error)
}

// SummaryCache is the cache surface for the summary panel. Failures are
// logged and bypassed.
type SummaryCache interface {
	GetSummary(ctx context.Context) (*models.SummaryStats, bool, error)
	SetSummary(ctx context.Context, stats *models.SummaryStats, ttl time.Duration) error
}

type service struct {
	txRepo repositories.TransactionRepository
	cache  SummaryCache
}

// NewService creates a new dashboard service. cache may be nil to
// disable summary caching.
func NewService(txRepo repositories.TransactionRepository, cache SummaryCache) Service {
	if txRepo == nil {
		panic("transaction repository is required")
	}
	return &service{txRepo: txRepo, cache: cache}
}

func (s *service) GetSummary(ctx context.Context) (*models.SummaryStats, error) {
	if s.cache != nil {
		if stats, found, err := s.cache.GetSummary(ctx); err == nil && found {
			return stats, nil
		} else if err != nil {
			log.Printf("summary cache read failed: %v", err)
		}
	}

	total, err := s.txRepo.Count(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get summary stats: %w", err)
	}
	flagged, err := s.txRepo.Count(ctx, models.TransactionStatusFlagged)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary stats: %w", err)
	}
	blocked, err := s.txRepo.Count(ctx, models.TransactionStatusBlocked)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary stats: %w", err)
	}

	prevented := int64(float64(blocked) * preventedFactor)

	// Savings sums the first `prevented` blocked transactions in store
	// order. Like the prevented count itself this is an estimate, not
	// an accounting figure.
	var savings float64
	if prevented > 0 {
		blockedTxs, err := s.txRepo.ListByStatus(ctx, models.TransactionStatusBlocked, int(prevented))
		if err != nil {
			return nil, fmt.Errorf("failed to get summary stats: %w", err)
		}
		for _, tx := range blockedTxs {
			savings += tx.Amount
		}
	}

	stats := &models.SummaryStats{
		TotalTransactions: total,
		FlaggedCount:      flagged,
		BlockedCount:      blocked,
		PreventedCount:    prevented,
		EstimatedSavings:  savings,
	}

	if s.cache != nil {
		if err := s.cache.SetSummary(ctx, stats, summaryCacheTTL); err != nil {
			log.Printf("summary cache write failed: %v", err)
		}
	}
	return stats, nil
}

func (s *service) GetAlerts(ctx context.Context) ([]models.Alert, error) {
	txs, err := s.txRepo.ListHighRisk(ctx, highRiskScore, alertFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get alerts: %w", err)
	}

	now := time.Now()
	alerts := make([]models.Alert, len(txs))
	for i, tx := range txs {
		alerts[i] = models.Alert{
			ID:         tx.ID,
			Reference:  tx.Reference,
			Type:       tx.Type,
			Amount:     tx.Amount,
			RiskScore:  tx.RiskScore,
			Status:     tx.Status,
			Indicators: tx.Indicators,
			Age:        relativeAge(tx.CreatedAt, now),
			CreatedAt:  tx.CreatedAt,
		}
	}
	return alerts, nil
}

func (s *service) GetVolume(ctx context.Context, timeframe string) ([]models.VolumeBucket, error) {
	now := time.Now()

	var since time.Time
	byHour := false
	switch timeframe {
	case "7d":
		since = now.AddDate(0, 0, -7)
	case "30d":
		since = now.AddDate(0, 0, -30)
	default:
		// Unknown timeframes fall back to 24h rather than erroring.
		since = now.Add(-24 * time.Hour)
		byHour = true
	}

	txs, err := s.txRepo.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get volume: %w", err)
	}
	return bucketVolume(txs, byHour), nil
}

func bucketVolume(txs []models.Transaction, byHour bool) []models.VolumeBucket {
	type key struct {
		sort  int
		date  string
		label string
	}
	buckets := make(map[string]*models.VolumeBucket)
	order := make(map[string]key)

	for _, tx := range txs {
		var k key
		if byHour {
			h := tx.CreatedAt.Hour()
			k = key{sort: h, label: fmt.Sprintf("%d:00", h)}
		} else {
			d := tx.CreatedAt.Format("2006-01-02")
			k = key{date: d, label: d}
		}

		b, ok := buckets[k.label]
		if !ok {
			b = &models.VolumeBucket{Label: k.label}
			buckets[k.label] = b
			order[k.label] = k
		}
		b.Total++
		if tx.RiskScore > highRiskScore {
			b.Fraudulent++
		}
	}

	result := make([]models.VolumeBucket, 0, len(buckets))
	for label := range buckets {
		result = append(result, *buckets[label])
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := order[result[i].Label], order[result[j].Label]
		if byHour {
			return a.sort < b.sort
		}
		return a.date < b.date
	})
	return result
}

func (s *service) GetCategories(ctx context.Context) ([]models.CategoryCount, error) {
	counts, err := s.txRepo.CountBlockedByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > categoryLimit {
		counts = counts[:categoryLimit]
	}
	return counts, nil
}

func (s *service) ListTransactions(ctx context.Context, status, riskLevel string, page, limit int) (*models.TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}

	filter := repositories.TransactionFilter{
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	if status != "" && status != "all" {
		filter.Status = status
	}

	switch riskLevel {
	case RiskLevelHigh:
		min := 76
		filter.MinRisk = &min
	case RiskLevelMedium:
		min, max := 40, 75
		filter.MinRisk = &min
		filter.MaxRisk = &max
	case RiskLevelLow:
		max := 39
		filter.MaxRisk = &max
	}

	txs, total, err := s.txRepo.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &models.TransactionPage{
		Transactions: txs,
		Total:        total,
		Page:         page,
		Limit:        limit,
		Pages:        int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// relativeAge renders how long ago t was, with integer floor division at
// each unit.
func relativeAge(t, now time.Time) string {
	secs := int(now.Sub(t).Seconds())
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60:
		return fmt.Sprintf("%d seconds ago", secs)
	case secs < 3600:
		return fmt.Sprintf("%d minutes ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%d hours ago", secs/3600)
	default:
		return fmt.Sprintf("%d days ago", secs/86400)
	}
}
