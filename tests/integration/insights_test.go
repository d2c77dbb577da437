package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	adaptershttp "github.com/iho/finsight/internal/adapter/http"
	"github.com/iho/finsight/internal/adapter/http/handler"
	"github.com/iho/finsight/internal/adapter/repository/memory"
	postgresrepo "github.com/iho/finsight/internal/adapter/repository/postgres"
	"github.com/iho/finsight/internal/categorize"
	"github.com/iho/finsight/internal/usecase"
	"github.com/iho/finsight/tests/testutil"
)

func newRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	retrier := postgresrepo.NewRetrier(logger)
	repo := postgresrepo.NewTransactionRepository(testDB.Pool, retrier)
	cache := memory.NewCache()
	idGen := postgresrepo.NewULIDGenerator()

	insightUC := usecase.NewInsightUseCase(repo, cache, 0, logger)
	ingestUC := usecase.NewIngestUseCase(repo, cache, nil, categorize.NewKeywordCategorizer(), idGen, nil, logger)
	transactionUC := usecase.NewTransactionUseCase(repo)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		InsightHandler:     handler.NewInsightHandler(insightUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC, ingestUC, 1<<20),
		HealthHandler:      handler.NewHealthHandler(testDB.Pool, nil),
		Logger:             logger,
	})
}

func uploadCSV(t *testing.T, router http.Handler, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "statement.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/upload-csv", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStatementImportAndInsights(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newRouter(t, testDB)

	statement := "date,description,amount,category,payment_method\n" +
		"2025-01-05,ACME PAYROLL,3000,Salary,Transfer\n" +
		"2025-01-10,RENT JANUARY,-1200,Rent,Transfer\n" +
		"2025-01-12,NETFLIX.COM,-15.99,,Card\n"

	t.Run("upload csv statement", func(t *testing.T) {
		rec := uploadCSV(t, router, statement)
		if rec.Code != http.StatusCreated {
			t.Fatalf("upload = %d: %s", rec.Code, rec.Body.String())
		}

		var result struct {
			Parsed     int `json:"parsed"`
			Inserted   int `json:"inserted"`
			Duplicates int `json:"duplicates"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if result.Inserted != 3 {
			t.Fatalf("inserted = %d, want 3", result.Inserted)
		}
	})

	t.Run("re-upload is deduplicated", func(t *testing.T) {
		rec := uploadCSV(t, router, statement)
		if rec.Code != http.StatusCreated {
			t.Fatalf("upload = %d: %s", rec.Code, rec.Body.String())
		}

		var result struct {
			Inserted   int `json:"inserted"`
			Duplicates int `json:"duplicates"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if result.Inserted != 0 || result.Duplicates != 3 {
			t.Fatalf("re-upload = %+v, want 0 inserted, 3 duplicates", result)
		}
	})

	t.Run("summary reflects the ledger", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/insights/summary", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("summary = %d: %s", rec.Code, rec.Body.String())
		}

		var summary struct {
			TotalIncome   float64 `json:"total_income"`
			TotalExpenses float64 `json:"total_expenses"`
			Balance       float64 `json:"balance"`
			Transactions  int     `json:"transactions"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
			t.Fatalf("invalid json: %v", err)
		}

		if summary.Transactions != 3 {
			t.Errorf("transactions = %d, want 3", summary.Transactions)
		}
		if summary.Balance != summary.TotalIncome+summary.TotalExpenses {
			t.Errorf("balance %v != income %v + expenses %v", summary.Balance, summary.TotalIncome, summary.TotalExpenses)
		}
	})

	t.Run("blank category is filled in", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/?limit=100", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("list = %d: %s", rec.Code, rec.Body.String())
		}

		var list struct {
			Transactions []struct {
				Description string `json:"description"`
				Category    string `json:"category"`
			} `json:"transactions"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
			t.Fatalf("invalid json: %v", err)
		}

		found := false
		for _, tx := range list.Transactions {
			if tx.Description == "NETFLIX.COM" {
				found = true
				if tx.Category != "Subscriptions" {
					t.Errorf("NETFLIX category = %q, want Subscriptions", tx.Category)
				}
			}
		}
		if !found {
			t.Error("uploaded NETFLIX.COM row not returned by listing")
		}
	})

	t.Run("export round-trips the ledger", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/export/csv", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("export = %d: %s", rec.Code, rec.Body.String())
		}
		if !bytes.Contains(rec.Body.Bytes(), []byte("RENT JANUARY")) {
			t.Errorf("export missing data: %s", rec.Body.String())
		}
	})
}

func TestForecastOverSeededHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	logger := zerolog.Nop()
	repo := postgresrepo.NewTransactionRepository(testDB.Pool, postgresrepo.NewRetrier(logger))

	months := []string{"2025-01", "2025-02", "2025-03", "2025-04"}
	totals := []float64{900, 950, 1000, 1050}
	fixtures := testutil.MonthOfExpenses(months, totals)
	for _, date := range []string{"2025-01-03", "2025-02-03", "2025-03-03", "2025-04-03", "2025-01-20", "2025-02-20", "2025-03-20"} {
		fixtures = append(fixtures, testutil.Transaction(date, "GROCERIES "+date, -80, "Food"))
	}

	if _, err := repo.InsertBatch(ctx, fixtures); err != nil {
		t.Fatalf("seed: %v", err)
	}

	router := newRouter(t, testDB)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/insights/forecast", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("forecast = %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Forecast *struct {
			NextMonthExpenses float64 `json:"next_month_expenses"`
		} `json:"forecast"`
		Method string `json:"method"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if result.Forecast == nil {
		t.Fatalf("forecast missing with sufficient history: %s", rec.Body.String())
	}
	if result.Forecast.NextMonthExpenses <= 0 {
		t.Errorf("next_month_expenses = %v, want positive", result.Forecast.NextMonthExpenses)
	}
}
