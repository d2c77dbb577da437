package insight

import "math"

// Damping applied to the trend component when extrapolating. Keeps one-step
// projections from chasing a late swing in short series.
const dampingFactor = 0.9

// smoothingGrid is the fixed parameter grid searched when fitting. The grid
// is deliberately tiny: fitting stays O(len(series) * 12) so a forecast call
// remains cheap enough for synchronous request handling.
var (
	smoothingAlphas = []float64{0.2, 0.4, 0.6, 0.8}
	smoothingBetas  = []float64{0.05, 0.15, 0.3}
)

// expSmoothingForecast fits a damped additive (Holt) exponential smoothing
// model to the monthly series and returns a one-step-ahead point and 95%
// interval. Yearly/weekly/daily seasonality is deliberately absent so the
// fit is deterministic.
//
// ok is false whenever the fit is unusable (short series, degenerate
// numbers); the caller is expected to drop the refinement silently.
func expSmoothingForecast(series []float64) (Refinement, bool) {
	if len(series) < minRefinementPoints {
		return Refinement{}, false
	}

	bestSSE := math.Inf(1)
	bestForecast := 0.0

	for _, alpha := range smoothingAlphas {
		for _, beta := range smoothingBetas {
			forecast, sse := holtFit(series, alpha, beta)
			if sse < bestSSE {
				bestSSE = sse
				bestForecast = forecast
			}
		}
	}

	if math.IsInf(bestSSE, 1) || math.IsNaN(bestSSE) || math.IsNaN(bestForecast) {
		return Refinement{}, false
	}

	if bestForecast < 0 {
		bestForecast = 0
	}

	sigma := math.Sqrt(bestSSE / float64(len(series)))
	interval := confidenceZ * sigma

	return Refinement{
		NextMonthExpenses: round2(bestForecast),
		ConfidenceLower:   round2(bestForecast - interval),
		ConfidenceUpper:   round2(bestForecast + interval),
		Method:            MethodExpSmoothing,
	}, true
}

// holtFit runs damped Holt smoothing over the series with the given
// parameters, returning the one-step-ahead forecast and the in-sample sum of
// squared one-step errors.
func holtFit(series []float64, alpha, beta float64) (forecast, sse float64) {
	level := series[0]
	trend := series[1] - series[0]

	for i := 1; i < len(series); i++ {
		predicted := level + dampingFactor*trend
		err := series[i] - predicted
		sse += err * err

		prevLevel := level
		level = alpha*series[i] + (1-alpha)*(prevLevel+dampingFactor*trend)
		trend = beta*(level-prevLevel) + (1-beta)*dampingFactor*trend
	}

	return level + dampingFactor*trend, sse
}
