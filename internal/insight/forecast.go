package insight

import (
	"fmt"
	"math"
	"sort"

	"github.com/iho/finsight/internal/domain"
)

const (
	// minForecastRecords is the smallest ledger a forecast is attempted on.
	minForecastRecords = 10

	// minRefinementPoints is the smallest monthly expense series the
	// time-series refinement is attempted on.
	minRefinementPoints = 6

	// stableSlopeRatio: slopes smaller than this fraction of the series
	// mean are labelled "stable".
	stableSlopeRatio = 0.05

	// confidenceZ is the 95% normal quantile used for interval bounds.
	confidenceZ = 1.96

	// Seasonal adjustment clamp bounds.
	minSeasonalFactor = 0.5
	maxSeasonalFactor = 2.0
)

// Forecast projects next-month income and expenses from the ledger snapshot.
//
// The primary method fits a linear trend to the monthly expense and income
// series, applies a seasonal adjustment to the expense side, and derives
// per-category projections. When the expense history is long enough, an
// exponential-smoothing refinement is computed and carried alongside the
// primary numbers without replacing them.
//
// Any panic during the main computation degrades to a simple-average result
// carrying the failure text; callers never see an error from this engine.
func Forecast(txs []domain.Transaction) (result ForecastResult) {
	if len(txs) < minForecastRecords {
		return ForecastResult{
			Method:  MethodNone,
			Message: fmt.Sprintf("need at least %d transactions to forecast, have %d", minForecastRecords, len(txs)),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result = simpleAverageFallback(txs, r)
		}
	}()

	expenseByMonth := make(map[string]float64)
	incomeByMonth := make(map[string]float64)
	categoryByMonth := make(map[string]map[string]float64)

	for _, tx := range txs {
		month := tx.Month()
		amount := tx.Amount.InexactFloat64()

		switch {
		case tx.IsExpense():
			expenseByMonth[month] += -amount

			category := tx.CategoryOrDefault()
			if categoryByMonth[category] == nil {
				categoryByMonth[category] = make(map[string]float64)
			}
			categoryByMonth[category][month] += -amount
		case tx.IsIncome():
			incomeByMonth[month] += amount
		}
	}

	expenseSeries := sortedSeries(expenseByMonth)
	incomeSeries := sortedSeries(incomeByMonth)

	expenseForecast, expenseTrend, expenseChangePct := trendForecast(expenseSeries)
	incomeForecast, incomeTrend, incomeChangePct := trendForecast(incomeSeries)

	seasonal := seasonalFactor(expenseSeries)
	nextExpenses := round2(expenseForecast * seasonal)
	nextIncome := round2(incomeForecast)

	interval := confidenceZ * math.Sqrt(variance(expenseSeries))

	result = ForecastResult{
		Forecast: &ForecastNumbers{
			NextMonthExpenses: nextExpenses,
			NextMonthIncome:   nextIncome,
			NextMonthNet:      round2(nextIncome - nextExpenses),
			ConfidenceLower:   round2(nextExpenses - interval),
			ConfidenceUpper:   round2(nextExpenses + interval),
		},
		Trends: &Trends{
			ExpenseTrend:     expenseTrend,
			IncomeTrend:      incomeTrend,
			ExpenseChangePct: round2(expenseChangePct),
			IncomeChangePct:  round2(incomeChangePct),
		},
		CategoryForecasts: categoryForecasts(categoryByMonth),
		HistoricalData:    historicalData(expenseByMonth, incomeByMonth),
		Method:            MethodLinearTrend,
	}

	if len(expenseSeries) >= minRefinementPoints {
		// Refinement failure is silent: the trend-based numbers above
		// stand on their own.
		if refined, ok := expSmoothingForecast(expenseSeries); ok {
			result.Refinement = &refined
		}
	}

	return result
}

// trendForecast fits an OLS line to the series and extrapolates one step
// ahead. The forecast is floored at zero. The trend label is "stable" when
// the slope is small relative to the series mean, otherwise "increasing" or
// "decreasing" by slope sign.
func trendForecast(series []float64) (forecast float64, trend string, changePct float64) {
	if len(series) < 2 {
		last := 0.0
		if len(series) == 1 {
			last = series[0]
		}
		return last, "stable", 0
	}

	slope, intercept := linearRegression(series)

	forecast = slope*float64(len(series)) + intercept
	if forecast < 0 {
		forecast = 0
	}

	switch {
	case math.Abs(slope) < stableSlopeRatio*math.Abs(mean(series)):
		trend = "stable"
	case slope > 0:
		trend = "increasing"
	default:
		trend = "decreasing"
	}

	recent := mean(lastN(series, 3))
	if recent != 0 {
		changePct = slope / recent * 100
	}

	return forecast, trend, changePct
}

// seasonalFactor is the ratio of the recent average (last 3 months) to the
// annual average (last 12 months), clamped to [0.5, 2.0]. Series shorter
// than a year get no adjustment.
func seasonalFactor(series []float64) float64 {
	if len(series) < 12 {
		return 1.0
	}

	annual := mean(lastN(series, 12))
	if annual == 0 {
		return 1.0
	}

	factor := mean(lastN(series, 3)) / annual
	if factor < minSeasonalFactor {
		return minSeasonalFactor
	}
	if factor > maxSeasonalFactor {
		return maxSeasonalFactor
	}

	return factor
}

// categoryForecasts runs the trend sub-algorithm independently per category.
// Categories with fewer than two monthly points are omitted.
func categoryForecasts(categoryByMonth map[string]map[string]float64) map[string]CategoryForecast {
	forecasts := make(map[string]CategoryForecast)

	for category, byMonth := range categoryByMonth {
		series := sortedSeries(byMonth)
		if len(series) < 2 {
			continue
		}

		forecast, trend, _ := trendForecast(series)
		forecasts[category] = CategoryForecast{
			Forecast:   round2(forecast),
			Trend:      trend,
			AvgMonthly: round2(mean(series)),
		}
	}

	if len(forecasts) == 0 {
		return nil
	}

	return forecasts
}

func historicalData(expenseByMonth, incomeByMonth map[string]float64) []HistoricalPoint {
	months := make(map[string]struct{})
	for month := range expenseByMonth {
		months[month] = struct{}{}
	}
	for month := range incomeByMonth {
		months[month] = struct{}{}
	}

	keys := make([]string, 0, len(months))
	for month := range months {
		keys = append(keys, month)
	}
	sort.Strings(keys)

	points := make([]HistoricalPoint, 0, len(keys))
	for _, month := range keys {
		points = append(points, HistoricalPoint{
			Month:    month,
			Expenses: round2(expenseByMonth[month]),
			Income:   round2(incomeByMonth[month]),
		})
	}

	return points
}

// simpleAverageFallback is the degenerate forecast used when the main
// computation fails: total expense magnitude spread evenly over the months
// that have data.
func simpleAverageFallback(txs []domain.Transaction, cause any) ForecastResult {
	months := make(map[string]struct{})
	totalExpenses := 0.0

	for _, tx := range txs {
		months[tx.Month()] = struct{}{}
		if tx.IsExpense() {
			totalExpenses += -tx.Amount.InexactFloat64()
		}
	}

	avg := 0.0
	if len(months) > 0 {
		avg = round2(totalExpenses / float64(len(months)))
	}

	return ForecastResult{
		Forecast: &ForecastNumbers{
			NextMonthExpenses: avg,
			NextMonthNet:      -avg,
		},
		Method:  MethodSimpleAverage,
		Message: fmt.Sprintf("forecast fell back to simple average: %v", cause),
	}
}

func sortedSeries(byMonth map[string]float64) []float64 {
	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	series := make([]float64, len(months))
	for i, month := range months {
		series[i] = byMonth[month]
	}

	return series
}

func lastN(series []float64, n int) []float64 {
	if len(series) <= n {
		return series
	}
	return series[len(series)-n:]
}
