// Package service provides application-level services for managing the
// book catalog and the loan ledger.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent business-rule rejections that callers are expected
// to check for with errors.Is(); they are never retried internally.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Not-found and duplicate conditions surface the store sentinels unwrapped
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrBookUnavailable indicates a borrow attempt against a book whose
	// available count is zero. API layer should map this to HTTP 409.
	ErrBookUnavailable = errors.New("book is not available")

	// ErrLoanLimitExceeded indicates the user already holds the maximum
	// number of simultaneous active loans. API layer should map this to
	// HTTP 409.
	ErrLoanLimitExceeded = errors.New("active loan limit exceeded")
)
