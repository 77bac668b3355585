// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Source errors: a year's disclosure batch or a full series could not
	// be obtained. Non-fatal; the year or entity degrades by omission.
	ErrYearUnavailable = &Error{Code: "YEAR_UNAVAILABLE", Message: "disclosure batch unavailable for year"}
	ErrNoData          = &Error{Code: "NO_DATA", Message: "no data available"}
	ErrSourceFailed    = &Error{Code: "SOURCE_FAILED", Message: "data source request failed"}

	// Valuation errors: the affected entity produces no valuation.
	ErrInsufficientSeries = &Error{Code: "INSUFFICIENT_SERIES", Message: "insufficient paired observations"}

	// FatalNoData: nothing meaningful to report, the run aborts.
	ErrFatalNoData = &Error{Code: "FATAL_NO_DATA", Message: "no disclosure years or valued entities"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Report errors
	ErrReportFailed = &Error{Code: "REPORT_FAILED", Message: "writing report failed"}
)
