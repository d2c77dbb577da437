package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/finsight/internal/domain"
	"github.com/iho/finsight/internal/usecase"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrTransactionNotFound, http.StatusNotFound},
		{domain.ErrMalformedTransaction, http.StatusBadRequest},
		{domain.ErrEmptyStatement, http.StatusBadRequest},
		{domain.ErrUnparsableStatement, http.StatusBadRequest},
		{usecase.ErrNothingToExport, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", domain.ErrEmptyStatement), http.StatusBadRequest},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestParseIntQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=25&bad=abc", nil)

	if got := parseIntQuery(r, "limit", 50); got != 25 {
		t.Errorf("limit = %d, want 25", got)
	}
	if got := parseIntQuery(r, "bad", 50); got != 50 {
		t.Errorf("bad value should fall back to default, got %d", got)
	}
	if got := parseIntQuery(r, "missing", 50); got != 50 {
		t.Errorf("missing value should fall back to default, got %d", got)
	}
}
