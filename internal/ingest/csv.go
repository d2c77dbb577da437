// Package ingest parses CSV and PDF bank statements into ledger
// transactions.
package ingest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/iho/finsight/internal/domain"
)

// statementRow maps the columns of an uploaded CSV statement. category and
// payment_method are optional.
type statementRow struct {
	Date          string `csv:"date"`
	Description   string `csv:"description"`
	Amount        string `csv:"amount"`
	Category      string `csv:"category"`
	PaymentMethod string `csv:"payment_method"`
}

// exportRow is the standardized CSV export format.
type exportRow struct {
	Date          string `csv:"date"`
	Description   string `csv:"description"`
	Amount        string `csv:"amount"`
	Category      string `csv:"category"`
	PaymentMethod string `csv:"payment_method"`
}

// Accepted statement date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"01/02/2006",
}

// ParseCSV reads a CSV statement into transactions. IDs are left unset; the
// ingestion use case assigns them before storage.
func ParseCSV(r io.Reader) ([]domain.Transaction, error) {
	var rows []statementRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparsableStatement, err)
	}

	txs := make([]domain.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := rowToTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// WriteCSV renders transactions in the standardized export format.
func WriteCSV(txs []domain.Transaction) (string, error) {
	rows := make([]exportRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, exportRow{
			Date:          tx.Date.Format("2006-01-02"),
			Description:   tx.Description,
			Amount:        tx.Amount.String(),
			Category:      tx.Category,
			PaymentMethod: tx.PaymentMethod,
		})
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("marshal csv export: %w", err)
	}

	return out, nil
}

func rowToTransaction(row statementRow) (domain.Transaction, error) {
	date, err := ParseDate(row.Date)
	if err != nil {
		return domain.Transaction{}, err
	}

	amount, err := parseAmount(row.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	return domain.Transaction{
		Date:          date,
		Description:   strings.TrimSpace(row.Description),
		Amount:        amount,
		Category:      strings.TrimSpace(row.Category),
		PaymentMethod: strings.TrimSpace(row.PaymentMethod),
	}, nil
}

// ParseDate parses a statement date in any of the accepted layouts.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", domain.ErrUnparsableStatement, value)
}

func parseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: unrecognized amount %q", domain.ErrUnparsableStatement, value)
	}

	return amount, nil
}
