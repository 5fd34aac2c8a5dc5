package contracts

import (
	"errors"
	"fmt"
	"strings"
)

// FetchErrorKind classifies why the upstream fetch failed.
type FetchErrorKind string

const (
	FetchTimeout    FetchErrorKind = "timeout"
	FetchConnection FetchErrorKind = "connection"
	FetchParse      FetchErrorKind = "parse"
)

// FetchError is surfaced after the retry budget is exhausted.
type FetchError struct {
	Kind     FetchErrorKind
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed (%s) after %d attempt(s): %v", e.Kind, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps an underlying error with its classification
func NewFetchError(kind FetchErrorKind, attempts int, err error) *FetchError {
	return &FetchError{Kind: kind, Attempts: attempts, Err: err}
}

// ValidationCode identifies one failed table check.
type ValidationCode string

const (
	MissingColumns       ValidationCode = "missing_columns"
	InsufficientRows     ValidationCode = "insufficient_rows"
	ExcessiveMissingData ValidationCode = "excessive_missing_data"
	DuplicateKeys        ValidationCode = "duplicate_keys"
)

// ValidationReason is one failed check with its diagnostic detail.
type ValidationReason struct {
	Code   ValidationCode `json:"code"`
	Detail string         `json:"detail"`
}

// ValidationError carries every reason a table snapshot was rejected.
// A table that fails validation must not be scored or used for similarity.
type ValidationError struct {
	Reasons []ValidationReason
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		parts[i] = fmt.Sprintf("%s: %s", r.Code, r.Detail)
	}
	return "table validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether the error contains a reason with the given code
func (e *ValidationError) Has(code ValidationCode) bool {
	for _, r := range e.Reasons {
		if r.Code == code {
			return true
		}
	}
	return false
}

// ErrFundNotFound is returned for similarity queries on unknown tickers.
var ErrFundNotFound = errors.New("fund not found")
