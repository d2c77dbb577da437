package categorize

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestKeywordCategorizer(t *testing.T) {
	c := NewKeywordCategorizer()

	tests := []struct {
		description string
		amount      float64
		want        string
	}{
		{"NETFLIX.COM AMSTERDAM", -15.99, "Subscriptions"},
		{"uber *trip helsinki", -23.40, "Transportation"},
		{"ACME PAYROLL JAN", 4200, "Salary"},
		{"WHOLE FOODS MARKET", -85.25, "Food"},
		{"TOTALLY UNKNOWN MERCHANT", -10, "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got := c.Categorize(tt.description, decimal.NewFromFloat(tt.amount))
			if got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestKeywordCategorizer_Deterministic(t *testing.T) {
	c := NewKeywordCategorizer()

	first := c.Categorize("GYM RENT LOCKER", decimal.NewFromInt(-30))
	for i := 0; i < 10; i++ {
		if got := c.Categorize("GYM RENT LOCKER", decimal.NewFromInt(-30)); got != first {
			t.Fatalf("categorization not deterministic: %q != %q", got, first)
		}
	}
}
