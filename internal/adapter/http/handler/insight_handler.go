package handler

import (
	"context"
	"net/http"

	"github.com/iho/finsight/internal/insight"
)

// InsightService defines the behavior needed by InsightHandler.
type InsightService interface {
	Summary(ctx context.Context) (insight.Summary, error)
	Categories(ctx context.Context) ([]insight.CategorySummary, error)
	Monthly(ctx context.Context) ([]insight.MonthlyPoint, error)
	Recurring(ctx context.Context) ([]insight.RecurringCandidate, error)
	Anomalies(ctx context.Context) ([]insight.Anomaly, error)
	Forecast(ctx context.Context) (insight.ForecastResult, error)
}

// InsightHandler handles analytics HTTP requests.
type InsightHandler struct {
	insightUC InsightService
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightUC InsightService) *InsightHandler {
	return &InsightHandler{insightUC: insightUC}
}

// Summary returns ledger-wide totals.
func (h *InsightHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.insightUC.Summary(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Categories returns the per-category expense breakdown.
func (h *InsightHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.insightUC.Categories(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute category breakdown", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// Monthly returns the net monthly trend.
func (h *InsightHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	trend, err := h.insightUC.Monthly(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute monthly trend", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, trend)
}

// Recurring returns detected recurring expenses.
func (h *InsightHandler) Recurring(w http.ResponseWriter, r *http.Request) {
	recurring, err := h.insightUC.Recurring(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to detect recurring expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, recurring)
}

// Anomalies returns statistically unusual expenses.
func (h *InsightHandler) Anomalies(w http.ResponseWriter, r *http.Request) {
	anomalies, err := h.insightUC.Anomalies(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to detect anomalies", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, anomalies)
}

// Forecast returns the next-month projection.
func (h *InsightHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	forecast, err := h.insightUC.Forecast(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute forecast", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, forecast)
}
