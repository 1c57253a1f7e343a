// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense does not exist or belongs to another owner.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidCategory is returned when the category is not part of the closed set.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidExpenseAmount is returned when the amount is negative.
	ErrInvalidExpenseAmount = errors.New("invalid expense amount")

	// ErrInvalidExpenseDate is returned when the expense date is missing or malformed.
	ErrInvalidExpenseDate = errors.New("invalid expense date")

	// ErrDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrNotesTooLong is returned when the notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")

	// ErrInvalidExpenseFilter is returned when list filters are inconsistent.
	ErrInvalidExpenseFilter = errors.New("invalid expense filter")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCategory        ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseAmount   ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidExpenseDate     ExpenseErrorCode = "EXP-010003"
	ErrCodeDescriptionTooLong     ExpenseErrorCode = "EXP-010004"
	ErrCodeNotesTooLong           ExpenseErrorCode = "EXP-010005"
	ErrCodeMissingExpenseFields   ExpenseErrorCode = "EXP-010006"
	ErrCodeInvalidExpenseFilter   ExpenseErrorCode = "EXP-010007"
	ErrCodeInvalidExpenseID       ExpenseErrorCode = "EXP-010008"
	ErrCodeInvalidExpenseCurrency ExpenseErrorCode = "EXP-010009"

	// Lookup errors (02XXXX)
	ErrCodeExpenseNotFound ExpenseErrorCode = "EXP-020001"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
