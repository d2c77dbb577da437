package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/finsight/internal/domain"
	"github.com/iho/finsight/internal/usecase"
	"github.com/iho/finsight/internal/usecase/mocks"
)

func tx(t *testing.T, date, description string, amount float64, category string) domain.Transaction {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}

	return domain.Transaction{
		Date:        parsed,
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Category:    category,
	}
}

func TestInsightUseCase_Summary_Memoizes(t *testing.T) {
	ctx := context.Background()

	ledger := []domain.Transaction{
		tx(t, "2025-01-05", "SALARY", 3000, "Salary"),
		tx(t, "2025-01-10", "RENT", -1200, "Rent"),
	}

	fetches := 0
	repo := mocks.NewMockTransactionRepository()
	repo.GetAllFunc = func(ctx context.Context) ([]domain.Transaction, error) {
		fetches++
		return ledger, nil
	}

	cache := mocks.NewMockCache()
	uc := usecase.NewInsightUseCase(repo, cache, time.Minute, zerolog.Nop())

	first, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("first summary: %v", err)
	}

	second, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("second summary: %v", err)
	}

	if fetches != 1 {
		t.Errorf("expected 1 ledger fetch, got %d", fetches)
	}
	if cache.Sets != 1 {
		t.Errorf("expected 1 cache write, got %d", cache.Sets)
	}
	if !first.TotalIncome.Equal(second.TotalIncome) || !first.Balance.Equal(second.Balance) {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}
	if !first.Balance.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("balance = %s, want 1800", first.Balance)
	}
}

func TestInsightUseCase_Summary_RecomputesAfterFlush(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewMockTransactionRepository()
	repo.Seed(tx(t, "2025-01-10", "RENT", -1200, "Rent"))

	cache := mocks.NewMockCache()
	uc := usecase.NewInsightUseCase(repo, cache, time.Minute, zerolog.Nop())

	before, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	repo.Seed(tx(t, "2025-02-01", "SALARY", 3000, "Salary"))

	stale, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("stale summary: %v", err)
	}
	if !stale.Balance.Equal(before.Balance) {
		t.Fatalf("expected stale cached balance %s, got %s", before.Balance, stale.Balance)
	}

	if err := cache.FlushAll(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	fresh, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("fresh summary: %v", err)
	}
	if !fresh.Balance.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("post-flush balance = %s, want 1800", fresh.Balance)
	}
}

func TestInsightUseCase_WorksWithoutCache(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewMockTransactionRepository()
	repo.Seed(tx(t, "2025-01-10", "RENT", -1200, "Rent"))

	uc := usecase.NewInsightUseCase(repo, nil, time.Minute, zerolog.Nop())

	summary, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !summary.TotalExpenses.Equal(decimal.NewFromInt(-1200)) {
		t.Errorf("total_expenses = %s, want -1200", summary.TotalExpenses)
	}

	if _, err := uc.Categories(ctx); err != nil {
		t.Errorf("categories: %v", err)
	}
	if _, err := uc.Monthly(ctx); err != nil {
		t.Errorf("monthly: %v", err)
	}
}

func TestInsightUseCase_CacheFailuresAreNonFatal(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewMockTransactionRepository()
	repo.Seed(tx(t, "2025-01-10", "RENT", -1200, "Rent"))

	cache := mocks.NewMockCache()
	cache.GetFunc = func(ctx context.Context, key string) ([]byte, error) {
		return nil, errors.New("connection refused")
	}
	cache.SetFunc = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		return errors.New("connection refused")
	}

	uc := usecase.NewInsightUseCase(repo, cache, time.Minute, zerolog.Nop())

	summary, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary should survive a broken cache: %v", err)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(-1200)) {
		t.Errorf("balance = %s, want -1200", summary.Balance)
	}
}

func TestInsightUseCase_RejectsMalformedLedger(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewMockTransactionRepository()
	repo.Seed(domain.Transaction{
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Description: "",
		Amount:      decimal.NewFromInt(-10),
	})

	uc := usecase.NewInsightUseCase(repo, nil, time.Minute, zerolog.Nop())

	if _, err := uc.Recurring(ctx); !errors.Is(err, domain.ErrMalformedTransaction) {
		t.Errorf("recurring: expected ErrMalformedTransaction, got %v", err)
	}
	if _, err := uc.Anomalies(ctx); !errors.Is(err, domain.ErrMalformedTransaction) {
		t.Errorf("anomalies: expected ErrMalformedTransaction, got %v", err)
	}
}

func TestInsightUseCase_PropagatesRepositoryError(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewMockTransactionRepository()
	repoErr := errors.New("connection reset")
	repo.GetAllFunc = func(ctx context.Context) ([]domain.Transaction, error) {
		return nil, repoErr
	}

	uc := usecase.NewInsightUseCase(repo, nil, time.Minute, zerolog.Nop())

	if _, err := uc.Forecast(ctx); !errors.Is(err, repoErr) {
		t.Errorf("forecast: expected repository error, got %v", err)
	}
	if _, err := uc.Summary(ctx); !errors.Is(err, repoErr) {
		t.Errorf("summary: expected repository error, got %v", err)
	}
}
