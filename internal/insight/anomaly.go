package insight

import (
	"sort"

	"github.com/iho/finsight/internal/domain"
)

const (
	// minAnomalyRecords is the smallest expense sample for which z-scores
	// are meaningful.
	minAnomalyRecords = 10

	// zScoreThreshold flags values more than three standard deviations
	// above the mean magnitude.
	zScoreThreshold = 3.0

	// iqrMultiplier is the Tukey fence multiplier.
	iqrMultiplier = 1.5
)

// DetectAnomalies flags statistically unusual expense transactions using the
// union of two methods: z-score above zScoreThreshold, and magnitude outside
// the Tukey IQR fences. Results are sorted by z-score descending.
//
// Fewer than minAnomalyRecords expense records, or a zero-variance sample,
// yields an empty slice.
func DetectAnomalies(txs []domain.Transaction) []Anomaly {
	var expenses []domain.Transaction
	for _, tx := range txs {
		if tx.IsExpense() {
			expenses = append(expenses, tx)
		}
	}

	if len(expenses) < minAnomalyRecords {
		return []Anomaly{}
	}

	magnitudes := make([]float64, len(expenses))
	for i, tx := range expenses {
		magnitudes[i] = tx.Amount.Abs().InexactFloat64()
	}

	m := mean(magnitudes)
	sd := stddev(magnitudes)
	if sd == 0 {
		// All magnitudes identical: no anomaly is definable.
		return []Anomaly{}
	}

	q1 := percentile(magnitudes, 25)
	q3 := percentile(magnitudes, 75)
	iqr := q3 - q1
	lowerFence := q1 - iqrMultiplier*iqr
	upperFence := q3 + iqrMultiplier*iqr

	var anomalies []Anomaly
	for i, tx := range expenses {
		z := (magnitudes[i] - m) / sd

		if z > zScoreThreshold || magnitudes[i] < lowerFence || magnitudes[i] > upperFence {
			anomalies = append(anomalies, Anomaly{
				Date:        tx.Date.Format("2006-01-02"),
				Description: tx.Description,
				Amount:      tx.Amount,
				Category:    tx.CategoryOrDefault(),
				ZScore:      round2(z),
			})
		}
	}

	sort.Slice(anomalies, func(i, j int) bool {
		return anomalies[i].ZScore > anomalies[j].ZScore
	})

	if anomalies == nil {
		return []Anomaly{}
	}

	return anomalies
}
