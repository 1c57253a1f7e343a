package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
)

// CreateExpenseRequest represents the request body for expense creation.
// Date accepts YYYY-MM-DD or RFC 3339.
type CreateExpenseRequest struct {
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        string           `json:"date"`
	Category    string           `json:"category"`
	Currency    string           `json:"currency,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// UpdateExpenseRequest represents the request body for a partial expense update.
type UpdateExpenseRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// SuggestCategoryRequest represents the request body for a category suggestion.
type SuggestCategoryRequest struct {
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Currency    string    `json:"currency"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Count    int               `json:"count"`
	Total    string            `json:"total"`
}

// SuggestCategoryResponse represents a category suggestion.
type SuggestCategoryResponse struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// ToExpenseResponse converts an ExpenseOutput to an ExpenseResponse DTO.
func ToExpenseResponse(output *expense.ExpenseOutput) ExpenseResponse {
	return ExpenseResponse{
		ID:          output.ID.String(),
		Description: output.Description,
		Amount:      output.Amount.StringFixed(2),
		Date:        output.Date.UTC(),
		Category:    string(output.Category),
		Currency:    output.Currency,
		Notes:       output.Notes,
		CreatedAt:   output.CreatedAt,
		UpdatedAt:   output.UpdatedAt,
	}
}

// ToExpenseListResponse converts a ListExpensesOutput to an ExpenseListResponse.
func ToExpenseListResponse(output *expense.ListExpensesOutput) ExpenseListResponse {
	expenses := make([]ExpenseResponse, len(output.Expenses))
	for i, e := range output.Expenses {
		expenses[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{
		Expenses: expenses,
		Count:    len(expenses),
		Total:    output.Total.StringFixed(2),
	}
}

// ParseDate accepts a calendar date (interpreted as UTC midnight) or an RFC 3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
