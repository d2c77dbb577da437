// Package masking hides sensitive transaction details in log output while
// keeping enough shape to debug with.
package masking

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Description masks the middle of a transaction description, keeping the
// first three and last two characters.
func Description(description string) string {
	if description == "" {
		return "N/A"
	}

	if len(description) <= 5 {
		return strings.Repeat("*", len(description))
	}

	return description[:3] + "***" + description[len(description)-2:]
}

// Amount masks a transaction amount down to its rough order of magnitude.
func Amount(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "$0.00"
	}

	abs := amount.Abs()
	switch {
	case abs.LessThan(decimal.NewFromInt(10)):
		return "$*.xx"
	case abs.LessThan(decimal.NewFromInt(100)):
		return "$**.xx"
	case abs.LessThan(decimal.NewFromInt(1000)):
		return "$***.xx"
	default:
		return "$*****.xx"
	}
}
