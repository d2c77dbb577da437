package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/iho/finsight/internal/domain"
	"github.com/iho/finsight/internal/infrastructure/metrics"
	"github.com/iho/finsight/internal/ingest"
	"github.com/iho/finsight/internal/masking"
)

// ImportResult reports the outcome of a statement import.
type ImportResult struct {
	Parsed     int `json:"parsed"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
}

// IngestUseCase imports bank/credit-card statements into the ledger and
// invalidates the insight cache after every successful batch.
type IngestUseCase struct {
	repo        TransactionRepository
	cache       Cache
	extractor   StatementExtractor
	categorizer Categorizer
	idGen       IDGenerator
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewIngestUseCase creates a new IngestUseCase. cache and metrics may be nil.
func NewIngestUseCase(
	repo TransactionRepository,
	cache Cache,
	extractor StatementExtractor,
	categorizer Categorizer,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		repo:        repo,
		cache:       cache,
		extractor:   extractor,
		categorizer: categorizer,
		idGen:       idGen,
		metrics:     m,
		logger:      logger,
	}
}

// ImportCSV parses a CSV statement and commits its transactions.
func (uc *IngestUseCase) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	txs, err := ingest.ParseCSV(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("parse csv statement: %w", err)
	}

	return uc.commit(ctx, txs, "csv")
}

// ImportPDF extracts transactions from a PDF statement via the configured
// extractor and commits them.
func (uc *IngestUseCase) ImportPDF(ctx context.Context, document []byte) (ImportResult, error) {
	if uc.extractor == nil {
		return ImportResult{}, fmt.Errorf("pdf import: %w", domain.ErrUnparsableStatement)
	}

	txs, err := uc.extractor.Extract(ctx, document)
	if err != nil {
		return ImportResult{}, fmt.Errorf("extract pdf statement: %w", err)
	}

	return uc.commit(ctx, txs, "pdf")
}

func (uc *IngestUseCase) commit(ctx context.Context, txs []domain.Transaction, source string) (ImportResult, error) {
	if len(txs) == 0 {
		return ImportResult{}, domain.ErrEmptyStatement
	}

	for i := range txs {
		if err := domain.ValidateTransaction(txs[i]); err != nil {
			uc.logger.Warn().
				Str("description", masking.Description(txs[i].Description)).
				Str("amount", masking.Amount(txs[i].Amount)).
				Msg("rejecting malformed statement row")

			return ImportResult{}, fmt.Errorf("statement row %d: %w", i, err)
		}

		if txs[i].Category == "" && uc.categorizer != nil {
			txs[i].Category = uc.categorizer.Categorize(txs[i].Description, txs[i].Amount)
		}

		txs[i].ID = uc.idGen.Generate()
	}

	inserted, err := uc.repo.InsertBatch(ctx, txs)
	if err != nil {
		return ImportResult{}, fmt.Errorf("store statement batch: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.FlushAll(ctx); err != nil {
			uc.logger.Warn().Err(err).Msg("failed to invalidate insight cache after import")
		}
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsIngested.WithLabelValues(source).Add(float64(inserted))
		uc.metrics.DuplicatesSkipped.WithLabelValues(source).Add(float64(len(txs) - inserted))
	}

	uc.logger.Info().
		Str("source", source).
		Int("parsed", len(txs)).
		Int("inserted", inserted).
		Msg("statement imported")

	return ImportResult{
		Parsed:     len(txs),
		Inserted:   inserted,
		Duplicates: len(txs) - inserted,
	}, nil
}
