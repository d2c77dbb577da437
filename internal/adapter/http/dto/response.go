package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/finsight/internal/domain"
	"github.com/iho/finsight/internal/usecase"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(tx domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            tx.ID,
		Date:          tx.Date.Format("2006-01-02"),
		Description:   tx.Description,
		Amount:        tx.Amount,
		Category:      tx.CategoryOrDefault(),
		PaymentMethod: tx.PaymentMethod,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, tx := range txs {
		result[i] = TransactionFromDomain(tx)
	}
	return result
}

// ListTransactionsResponse is the paginated transaction listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
}

// ImportResponse reports the outcome of a statement upload.
type ImportResponse struct {
	Parsed     int `json:"parsed"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
}

// ImportFromResult converts an import result to a response.
func ImportFromResult(result usecase.ImportResult) ImportResponse {
	return ImportResponse{
		Parsed:     result.Parsed,
		Inserted:   result.Inserted,
		Duplicates: result.Duplicates,
	}
}
