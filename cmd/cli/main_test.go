package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrettyJSON(t *testing.T) {
	out := prettyJSON([]byte(`{"a":1}`))

	expected := "{\n  \"a\": 1\n}"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}

	if got := prettyJSON([]byte("not json")); got != "not json" {
		t.Fatalf("non-json should pass through, got %q", got)
	}
}

func TestFetchInsight(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/insights/summary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"balance":1800}`))
	}))
	defer srv.Close()

	origURL := baseURL
	baseURL = srv.URL
	defer func() { baseURL = origURL }()

	out := captureOutput(t, func() {
		fetchInsight("summary")
	})

	if !strings.Contains(out, `"balance": 1800`) {
		t.Fatalf("expected pretty-printed balance, got %q", out)
	}
}

func TestExportLedger(t *testing.T) {
	csv := "date,description,amount,category,payment_method\n2025-01-10,RENT,-1200,Rent,\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/transactions/export/csv" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(csv))
	}))
	defer srv.Close()

	origURL := baseURL
	baseURL = srv.URL
	defer func() { baseURL = origURL }()

	out := captureOutput(t, func() {
		exportLedger()
	})

	if out != csv {
		t.Fatalf("export output = %q, want %q", out, csv)
	}
}
