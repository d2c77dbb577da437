package usecase

import (
	"context"
	"errors"

	"github.com/iho/finsight/internal/domain"
	"github.com/iho/finsight/internal/ingest"
)

// ErrNothingToExport is returned when a CSV export is requested against an
// empty ledger.
var ErrNothingToExport = errors.New("no transactions to export")

// TransactionUseCase handles plain ledger reads and exports.
type TransactionUseCase struct {
	repo TransactionRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(repo TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

// List returns a page of transactions plus the total ledger size.
func (uc *TransactionUseCase) List(ctx context.Context, limit, offset int) ([]domain.Transaction, int64, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	txs, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

// ExportCSV renders the full ledger as CSV.
func (uc *TransactionUseCase) ExportCSV(ctx context.Context) (string, error) {
	txs, err := uc.repo.GetAll(ctx)
	if err != nil {
		return "", err
	}

	if len(txs) == 0 {
		return "", ErrNothingToExport
	}

	return ingest.WriteCSV(txs)
}
