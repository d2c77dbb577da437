package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/iho/finsight/internal/adapter/http/dto"
	"github.com/iho/finsight/internal/domain"
	"github.com/iho/finsight/internal/usecase"
)

// TransactionService defines the ledger reads needed by TransactionHandler.
type TransactionService interface {
	List(ctx context.Context, limit, offset int) ([]domain.Transaction, int64, error)
	ExportCSV(ctx context.Context) (string, error)
}

// IngestService defines the statement imports needed by TransactionHandler.
type IngestService interface {
	ImportCSV(ctx context.Context, r io.Reader) (usecase.ImportResult, error)
	ImportPDF(ctx context.Context, document []byte) (usecase.ImportResult, error)
}

// TransactionHandler handles ledger HTTP requests.
type TransactionHandler struct {
	transactionUC  TransactionService
	ingestUC       IngestService
	maxUploadBytes int64
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService, ingestUC IngestService, maxUploadBytes int64) *TransactionHandler {
	return &TransactionHandler{
		transactionUC:  transactionUC,
		ingestUC:       ingestUC,
		maxUploadBytes: maxUploadBytes,
	}
}

// List returns a page of transactions.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	txs, total, err := h.transactionUC.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	limit, offset = domain.ValidatePagination(limit, offset)
	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txs),
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	})
}

// UploadCSV imports a CSV statement from a multipart form.
func (h *TransactionHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	file, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.ingestUC.ImportCSV(r.Context(), file)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to import csv statement", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ImportFromResult(result))
}

// UploadPDF imports a PDF statement from a multipart form.
func (h *TransactionHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	file, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	document, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload", err.Error())
		return
	}

	result, err := h.ingestUC.ImportPDF(r.Context(), document)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to import pdf statement", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ImportFromResult(result))
}

// ExportCSV streams the full ledger in the standardized CSV format.
func (h *TransactionHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	out, err := h.transactionUC.ExportCSV(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to export transactions", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

// openUpload extracts the "file" part of a multipart upload, enforcing the
// size limit.
func (h *TransactionHandler) openUpload(w http.ResponseWriter, r *http.Request) (io.ReadCloser, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", err.Error())
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field", err.Error())
		return nil, false
	}

	return file, true
}
