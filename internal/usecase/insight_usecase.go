package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/finsight/internal/domain"
	"github.com/iho/finsight/internal/insight"
)

// Cache keys for the aggregation engines. Only aggregations are memoized;
// the detectors and the forecast recompute on every call.
const (
	cacheKeySummary    = "summary"
	cacheKeyCategories = "categories"
	cacheKeyMonthly    = "monthly"
)

// InsightUseCase exposes the analytics engines over a ledger snapshot,
// memoizing the aggregation results.
type InsightUseCase struct {
	repo     TransactionRepository
	cache    Cache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewInsightUseCase creates a new InsightUseCase. cache may be nil to
// disable memoization.
func NewInsightUseCase(repo TransactionRepository, cache Cache, cacheTTL time.Duration, logger zerolog.Logger) *InsightUseCase {
	return &InsightUseCase{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Summary returns ledger-wide totals.
func (uc *InsightUseCase) Summary(ctx context.Context) (insight.Summary, error) {
	return cached(ctx, uc, cacheKeySummary, insight.Summarize)
}

// Categories returns the expense breakdown per category.
func (uc *InsightUseCase) Categories(ctx context.Context) ([]insight.CategorySummary, error) {
	return cached(ctx, uc, cacheKeyCategories, insight.Categorize)
}

// Monthly returns the net monthly trend.
func (uc *InsightUseCase) Monthly(ctx context.Context) ([]insight.MonthlyPoint, error) {
	return cached(ctx, uc, cacheKeyMonthly, insight.MonthlyTrend)
}

// Recurring returns roughly-monthly recurring expense candidates.
func (uc *InsightUseCase) Recurring(ctx context.Context) ([]insight.RecurringCandidate, error) {
	txs, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return insight.DetectRecurring(txs), nil
}

// Anomalies returns statistically unusual expense transactions.
func (uc *InsightUseCase) Anomalies(ctx context.Context) ([]insight.Anomaly, error) {
	txs, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return insight.DetectAnomalies(txs), nil
}

// Forecast projects next-month income and expenses. The engine handles its
// own failures, so the only error surfaced here is a snapshot fetch failure.
func (uc *InsightUseCase) Forecast(ctx context.Context) (insight.ForecastResult, error) {
	txs, err := uc.repo.GetAll(ctx)
	if err != nil {
		return insight.ForecastResult{}, err
	}

	return insight.Forecast(txs), nil
}

// snapshot fetches the full ledger and fails fast on malformed records,
// which indicate an upstream contract violation.
func (uc *InsightUseCase) snapshot(ctx context.Context) ([]domain.Transaction, error) {
	txs, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateLedger(txs); err != nil {
		return nil, err
	}

	return txs, nil
}

// cached serves the result for key from the cache when fresh, otherwise
// computes it from a new ledger snapshot and stores it. Cache write failures
// only cost the memoization, never the response.
func cached[T any](ctx context.Context, uc *InsightUseCase, key string, compute func([]domain.Transaction) T) (T, error) {
	var zero T

	if uc.cache != nil {
		if payload, err := uc.cache.Get(ctx, key); err == nil {
			var out T
			if err := json.Unmarshal(payload, &out); err == nil {
				return out, nil
			}
			uc.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		}
	}

	txs, err := uc.snapshot(ctx)
	if err != nil {
		return zero, err
	}

	out := compute(txs)

	if uc.cache != nil {
		payload, err := json.Marshal(out)
		if err == nil {
			err = uc.cache.Set(ctx, key, payload, uc.cacheTTL)
		}
		if err != nil {
			uc.logger.Warn().Err(err).Str("key", key).Msg("failed to cache insight result")
		}
	}

	return out, nil
}
