package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Uncategorized is the category assigned to transactions without a label.
const Uncategorized = "Uncategorized"

func init() {
	// API consumers expect amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction represents a single ledger transaction. The sign of Amount is
// the sole income/expense discriminator: positive amounts are income,
// negative amounts are expenses.
type Transaction struct {
	Date          time.Time
	ID            string
	Description   string
	Category      string
	PaymentMethod string
	Amount        decimal.Decimal
}

// IsExpense reports whether the transaction is an expense (negative amount).
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// IsIncome reports whether the transaction is income (positive amount).
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// CategoryOrDefault returns the category, or Uncategorized when unset.
func (t Transaction) CategoryOrDefault() string {
	if t.Category == "" {
		return Uncategorized
	}
	return t.Category
}

// Month returns the calendar month of the transaction date as "YYYY-MM".
func (t Transaction) Month() string {
	return t.Date.Format("2006-01")
}
