package error

import "errors"

// Statistics domain errors.
var (
	// ErrInvalidYear is returned when the year is missing, malformed or out of range.
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidMonth is returned when the month is outside 1..12.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidWindow is returned when the pattern window is outside the allowed range.
	ErrInvalidWindow = errors.New("invalid pattern window")

	// ErrInvalidPatternOrder is returned when an unknown pattern ordering is requested.
	ErrInvalidPatternOrder = errors.New("invalid pattern order")

	// ErrInvalidBudgetLimit is returned when a budget computation receives a non-positive limit.
	ErrInvalidBudgetLimit = errors.New("monthly budget limit must be positive")
)

// StatsErrorCode defines error codes for statistics errors.
// Format: STA-XXYYYY where XX is category and YYYY is specific error.
type StatsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidYear         StatsErrorCode = "STA-010001"
	ErrCodeInvalidMonth        StatsErrorCode = "STA-010002"
	ErrCodeInvalidWindow       StatsErrorCode = "STA-010003"
	ErrCodeInvalidPatternOrder StatsErrorCode = "STA-010004"

	// Configuration errors (02XXXX)
	ErrCodeInvalidBudgetLimit StatsErrorCode = "STA-020001"

	// Lookup errors (03XXXX)
	ErrCodeStatsOwnerNotFound StatsErrorCode = "STA-030001"
)

// StatsError represents a statistics error with code and message.
type StatsError struct {
	Code    StatsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatsError) Unwrap() error {
	return e.Err
}

// NewStatsError creates a new StatsError with the given code and message.
func NewStatsError(code StatsErrorCode, message string, err error) *StatsError {
	return &StatsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
