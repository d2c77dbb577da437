package insight

import "github.com/shopspring/decimal"

// Summary holds ledger-wide totals. TotalExpenses retains its negative sign,
// so Balance = TotalIncome + TotalExpenses always holds.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Balance       decimal.Decimal `json:"balance"`
	Transactions  int             `json:"transactions"`
}

// CategorySummary is the aggregated absolute expense magnitude for one
// category. Income is excluded from category breakdowns.
type CategorySummary struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthlyPoint is the net signed sum (income + expenses) for one calendar
// month, keyed as "YYYY-MM".
type MonthlyPoint struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// RecurringCandidate is a (description, amount) pair that repeats at roughly
// monthly intervals. Amount is the absolute magnitude.
type RecurringCandidate struct {
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Frequency       string          `json:"frequency"`
	AvgIntervalDays float64         `json:"avg_interval_days"`
	Occurrences     int             `json:"occurrences"`
	Category        string          `json:"category"`
	FirstDate       string          `json:"first_date"`
	LastDate        string          `json:"last_date"`
}

// Anomaly is an expense transaction flagged as statistically unusual.
type Anomaly struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	ZScore      float64         `json:"z_score"`
}

// ForecastNumbers carries the combined next-month projection.
type ForecastNumbers struct {
	NextMonthExpenses float64 `json:"next_month_expenses"`
	NextMonthIncome   float64 `json:"next_month_income"`
	NextMonthNet      float64 `json:"next_month_net"`
	ConfidenceLower   float64 `json:"confidence_lower"`
	ConfidenceUpper   float64 `json:"confidence_upper"`
}

// Trends labels the direction of the expense and income series.
type Trends struct {
	ExpenseTrend     string  `json:"expense_trend"`
	IncomeTrend      string  `json:"income_trend"`
	ExpenseChangePct float64 `json:"expense_change_pct"`
	IncomeChangePct  float64 `json:"income_change_pct"`
}

// CategoryForecast is a per-category trend projection.
type CategoryForecast struct {
	Forecast   float64 `json:"forecast"`
	Trend      string  `json:"trend"`
	AvgMonthly float64 `json:"avg_monthly"`
}

// HistoricalPoint is one month of the expense/income history returned
// alongside a forecast.
type HistoricalPoint struct {
	Month    string  `json:"month"`
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
}

// Refinement is the optional time-series refinement computed alongside the
// trend forecast. Its numbers are reported next to the primary forecast but
// never replace it.
type Refinement struct {
	NextMonthExpenses float64 `json:"next_month_expenses"`
	ConfidenceLower   float64 `json:"confidence_lower"`
	ConfidenceUpper   float64 `json:"confidence_upper"`
	Method            string  `json:"method"`
}

// ForecastResult is the full forecast response. Forecast is nil when the
// ledger holds too little data; Method then says why.
type ForecastResult struct {
	Forecast          *ForecastNumbers            `json:"forecast"`
	Trends            *Trends                     `json:"trends,omitempty"`
	CategoryForecasts map[string]CategoryForecast `json:"category_forecasts,omitempty"`
	HistoricalData    []HistoricalPoint           `json:"historical_data,omitempty"`
	Refinement        *Refinement                 `json:"refinement,omitempty"`
	Method            string                      `json:"method"`
	Message           string                      `json:"message,omitempty"`
}

// Forecast method labels.
const (
	MethodNone          = "none"
	MethodLinearTrend   = "linear_trend_with_seasonal"
	MethodSimpleAverage = "simple_average"
	MethodExpSmoothing  = "exp_smoothing"
)
