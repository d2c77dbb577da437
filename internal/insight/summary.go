package insight

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/finsight/internal/domain"
)

// Summarize computes ledger-wide totals. An empty ledger yields an all-zero
// summary.
func Summarize(txs []domain.Transaction) Summary {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, tx := range txs {
		switch {
		case tx.IsIncome():
			income = income.Add(tx.Amount)
		case tx.IsExpense():
			expenses = expenses.Add(tx.Amount)
		}
	}

	return Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Add(expenses),
		Transactions:  len(txs),
	}
}

// Categorize groups expense transactions by category and sums their absolute
// magnitudes, sorted by amount descending. Income records and ledgers with no
// expenses yield an empty slice.
func Categorize(txs []domain.Transaction) []CategorySummary {
	totals := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		category := tx.CategoryOrDefault()
		totals[category] = totals[category].Add(tx.Amount.Abs())
	}

	summaries := make([]CategorySummary, 0, len(totals))
	for category, amount := range totals {
		summaries = append(summaries, CategorySummary{Category: category, Amount: amount})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].Amount.Equal(summaries[j].Amount) {
			return summaries[i].Amount.GreaterThan(summaries[j].Amount)
		}
		return summaries[i].Category < summaries[j].Category
	})

	return summaries
}

// MonthlyTrend computes the net signed sum per calendar month, sorted by
// month ascending.
func MonthlyTrend(txs []domain.Transaction) []MonthlyPoint {
	totals := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		month := tx.Month()
		totals[month] = totals[month].Add(tx.Amount)
	}

	points := make([]MonthlyPoint, 0, len(totals))
	for month, amount := range totals {
		points = append(points, MonthlyPoint{Month: month, Amount: amount})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Month < points[j].Month
	})

	return points
}
