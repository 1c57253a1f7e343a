package error

import "errors"

// Owner domain errors.
var (
	// ErrOwnerNotFound is returned when no owner exists for the lookup key.
	ErrOwnerNotFound = errors.New("owner not found")

	// ErrOwnerAlreadyExists is returned when an owner for the external identity was created concurrently.
	ErrOwnerAlreadyExists = errors.New("owner already exists")

	// ErrMissingSubject is returned when identity claims carry no subject.
	ErrMissingSubject = errors.New("identity claims have no subject")

	// ErrInvalidBudgetLimitUpdate is returned when a profile update sets a non-positive budget limit.
	ErrInvalidBudgetLimitUpdate = errors.New("monthly budget limit must be greater than zero")

	// ErrInvalidCurrency is returned when the currency is not a three-letter code.
	ErrInvalidCurrency = errors.New("invalid currency")
)

// OwnerErrorCode defines error codes for owner errors.
// Format: OWN-XXYYYY where XX is category and YYYY is specific error.
type OwnerErrorCode string

const (
	// Identity errors (01XXXX)
	ErrCodeMissingSubject OwnerErrorCode = "OWN-010001"
	ErrCodeOwnerNotFound  OwnerErrorCode = "OWN-010002"

	// Profile errors (02XXXX)
	ErrCodeInvalidBudgetLimitUpdate OwnerErrorCode = "OWN-020001"
	ErrCodeInvalidCurrency          OwnerErrorCode = "OWN-020002"
	ErrCodeMissingProfileFields     OwnerErrorCode = "OWN-020003"
)

// OwnerError represents an owner error with code and message.
type OwnerError struct {
	Code    OwnerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *OwnerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *OwnerError) Unwrap() error {
	return e.Err
}

// NewOwnerError creates a new OwnerError with the given code and message.
func NewOwnerError(code OwnerErrorCode, message string, err error) *OwnerError {
	return &OwnerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
