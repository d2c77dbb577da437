package domain

import (
	"fmt"
	"strings"
)

// Validation constants
const (
	MaxDescriptionLength = 512
)

// ValidateTransaction checks that a transaction carries the fields every
// engine relies on. A failure here means an upstream parser or the store
// handed us a malformed record, so callers should fail fast rather than
// try to recover.
func ValidateTransaction(tx Transaction) error {
	if tx.Date.IsZero() {
		return fmt.Errorf("%w: date is unset", ErrMalformedTransaction)
	}

	if strings.TrimSpace(tx.Description) == "" {
		return fmt.Errorf("%w: description is empty", ErrMalformedTransaction)
	}

	if len(tx.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrMalformedTransaction, MaxDescriptionLength)
	}

	return nil
}

// ValidateLedger validates every transaction in a snapshot, reporting the
// index of the first malformed record.
func ValidateLedger(txs []Transaction) error {
	for i, tx := range txs {
		if err := ValidateTransaction(tx); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
