package insight

import (
	"sort"

	"github.com/iho/finsight/internal/domain"
)

const (
	// minRecurringRecords is the smallest ledger for which recurrence
	// detection runs at all.
	minRecurringRecords = 3

	// minOccurrences is how many times an identical (description, amount)
	// pair must appear to be a candidate.
	minOccurrences = 3

	// Average day-gap bounds for a roughly monthly cadence. Pairs outside
	// this window (weekly, quarterly, irregular) are not reported.
	minAvgIntervalDays = 25.0
	maxAvgIntervalDays = 40.0
)

type recurringKey struct {
	description string
	amount      string
}

// DetectRecurring identifies expense transactions that repeat at roughly
// monthly intervals: identical (description, amount) pairs occurring at
// least minOccurrences times with an average gap between consecutive
// occurrences of 25 to 40 days inclusive.
//
// Output is sorted by occurrences descending, then description ascending.
func DetectRecurring(txs []domain.Transaction) []RecurringCandidate {
	var expenses []domain.Transaction
	for _, tx := range txs {
		if tx.IsExpense() {
			expenses = append(expenses, tx)
		}
	}

	if len(expenses) < minRecurringRecords {
		return []RecurringCandidate{}
	}

	groups := make(map[recurringKey][]domain.Transaction)
	for _, tx := range expenses {
		key := recurringKey{description: tx.Description, amount: tx.Amount.String()}
		groups[key] = append(groups[key], tx)
	}

	candidates := make([]RecurringCandidate, 0)
	for _, group := range groups {
		if len(group) < minOccurrences {
			continue
		}

		sort.Slice(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		avgGap := averageGapDays(group)
		if avgGap < minAvgIntervalDays || avgGap > maxAvgIntervalDays {
			continue
		}

		first := group[0]
		last := group[len(group)-1]

		candidates = append(candidates, RecurringCandidate{
			Description:     first.Description,
			Amount:          first.Amount.Abs(),
			Frequency:       "monthly",
			AvgIntervalDays: round1(avgGap),
			Occurrences:     len(group),
			Category:        first.CategoryOrDefault(),
			FirstDate:       first.Date.Format("2006-01-02"),
			LastDate:        last.Date.Format("2006-01-02"),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Occurrences != candidates[j].Occurrences {
			return candidates[i].Occurrences > candidates[j].Occurrences
		}
		return candidates[i].Description < candidates[j].Description
	})

	return candidates
}

// averageGapDays averages the day-gaps between consecutive occurrences.
// The group must be sorted by date ascending and hold at least two entries.
func averageGapDays(group []domain.Transaction) float64 {
	total := 0.0
	for i := 1; i < len(group); i++ {
		total += group[i].Date.Sub(group[i-1].Date).Hours() / 24
	}

	return total / float64(len(group)-1)
}
