package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/finsight/internal/domain"
	"github.com/iho/finsight/internal/usecase"
)

func TestTransactionFromDomain(t *testing.T) {
	tx := domain.Transaction{
		ID:            "tx-1",
		Date:          time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Description:   "RENT JANUARY",
		Amount:        decimal.RequireFromString("-1200.50"),
		PaymentMethod: "Transfer",
	}

	resp := TransactionFromDomain(tx)

	require.Equal(t, "tx-1", resp.ID)
	require.Equal(t, "2025-01-10", resp.Date)
	require.Equal(t, domain.Uncategorized, resp.Category, "blank category renders as the default")

	payload, err := json.Marshal(resp)
	require.NoError(t, err)
	require.Contains(t, string(payload), `"amount":-1200.5`, "amounts serialize as JSON numbers")

	list := TransactionsFromDomain([]domain.Transaction{tx})
	require.Len(t, list, 1)
	require.Equal(t, resp.ID, list[0].ID)
}

func TestImportFromResult(t *testing.T) {
	resp := ImportFromResult(usecase.ImportResult{Parsed: 5, Inserted: 3, Duplicates: 2})

	require.Equal(t, ImportResponse{Parsed: 5, Inserted: 3, Duplicates: 2}, resp)
}
