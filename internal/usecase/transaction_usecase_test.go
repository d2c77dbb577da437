package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iho/finsight/internal/domain"
	"github.com/iho/finsight/internal/usecase"
	"github.com/iho/finsight/internal/usecase/mocks"
)

func TestTransactionUseCase_List(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewMockTransactionRepository()
	repo.Seed(
		tx(t, "2025-01-01", "COFFEE", -4.50, "Food"),
		tx(t, "2025-01-02", "LUNCH", -12.00, "Food"),
		tx(t, "2025-01-03", "BOOKS", -30.00, "Shopping"),
	)

	uc := usecase.NewTransactionUseCase(repo)

	txs, total, err := uc.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 2 {
		t.Errorf("page size = %d, want 2", len(txs))
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestTransactionUseCase_List_DefaultsPagination(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewMockTransactionRepository()
	var gotLimit, gotOffset int
	repo.ListFunc = func(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}

	uc := usecase.NewTransactionUseCase(repo)

	if _, _, err := uc.List(ctx, 0, -5); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotLimit != 50 || gotOffset != 0 {
		t.Errorf("pagination defaults = (%d, %d), want (50, 0)", gotLimit, gotOffset)
	}
}

func TestTransactionUseCase_ExportCSV(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewMockTransactionRepository()
	repo.Seed(tx(t, "2025-01-10", "RENT", -1200, "Rent"))

	uc := usecase.NewTransactionUseCase(repo)

	out, err := uc.ExportCSV(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "date,description,amount,category,payment_method") {
		t.Errorf("export missing header: %q", out)
	}
	if !strings.Contains(out, "2025-01-10,RENT,-1200,Rent,") {
		t.Errorf("export missing row: %q", out)
	}
}

func TestTransactionUseCase_ExportCSV_EmptyLedger(t *testing.T) {
	ctx := context.Background()

	uc := usecase.NewTransactionUseCase(mocks.NewMockTransactionRepository())

	if _, err := uc.ExportCSV(ctx); !errors.Is(err, usecase.ErrNothingToExport) {
		t.Errorf("expected ErrNothingToExport, got %v", err)
	}
}
