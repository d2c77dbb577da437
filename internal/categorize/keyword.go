// Package categorize assigns categories to transactions that arrive without
// one.
package categorize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValidCategories is the fixed taxonomy transactions are sorted into.
var ValidCategories = []string{
	"Food", "Transportation", "Entertainment", "Utilities", "Rent",
	"Salary", "Shopping", "Healthcare", "Education", "Travel",
	"Insurance", "Subscriptions", "Other",
}

// fallbackCategory is used when no keyword matches.
const fallbackCategory = "Other"

// KeywordCategorizer matches transaction descriptions against a keyword
// table. It implements usecase.Categorizer.
type KeywordCategorizer struct {
	keywords map[string][]string
}

// NewKeywordCategorizer creates a categorizer with the built-in keyword
// table.
func NewKeywordCategorizer() *KeywordCategorizer {
	return &KeywordCategorizer{
		keywords: map[string][]string{
			"Food":           {"RESTAURANT", "CAFE", "COFFEE", "GROCER", "SUPERMARKET", "PIZZA", "BAKERY", "DELI", "FOOD"},
			"Transportation": {"UBER", "LYFT", "TAXI", "FUEL", "GAS STATION", "PARKING", "TRANSIT", "RAILWAY", "METRO"},
			"Entertainment":  {"CINEMA", "THEATRE", "CONCERT", "STEAM", "PLAYSTATION", "TICKET"},
			"Utilities":      {"ELECTRIC", "WATER", "GAS BILL", "INTERNET", "BROADBAND", "PHONE", "MOBILE"},
			"Rent":           {"RENT", "LANDLORD", "LEASE"},
			"Salary":         {"SALARY", "PAYROLL", "WAGES"},
			"Shopping":       {"AMAZON", "EBAY", "STORE", "MALL", "RETAIL"},
			"Healthcare":     {"PHARMACY", "CLINIC", "HOSPITAL", "DENTAL", "DOCTOR", "GYM"},
			"Education":      {"TUITION", "UNIVERSITY", "SCHOOL", "COURSE", "UDEMY"},
			"Travel":         {"AIRLINE", "HOTEL", "AIRBNB", "BOOKING.COM", "FLIGHT"},
			"Insurance":      {"INSURANCE", "ASSURANCE", "POLICY"},
			"Subscriptions":  {"NETFLIX", "SPOTIFY", "SUBSCRIPTION", "AUDIBLE", "DISNEY", "PRIME"},
		},
	}
}

// Categorize returns the first category whose keyword appears in the
// description. Positive amounts with no match lean on Salary being the only
// income category, so they fall through to Other as well.
func (c *KeywordCategorizer) Categorize(description string, amount decimal.Decimal) string {
	upper := strings.ToUpper(description)

	// Fixed iteration order so repeated imports categorize identically.
	for _, category := range ValidCategories {
		for _, keyword := range c.keywords[category] {
			if strings.Contains(upper, keyword) {
				return category
			}
		}
	}

	return fallbackCategory
}
