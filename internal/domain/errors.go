package domain

import "errors"

var (
	// Transaction errors
	ErrMalformedTransaction = errors.New("transaction is missing required fields")
	ErrTransactionNotFound  = errors.New("transaction not found")

	// Ingestion errors
	ErrEmptyStatement      = errors.New("statement contains no transactions")
	ErrUnparsableStatement = errors.New("statement could not be parsed")
)
