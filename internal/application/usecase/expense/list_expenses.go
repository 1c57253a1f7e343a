package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ListExpensesInput represents the input for listing expenses.
type ListExpensesInput struct {
	OwnerID   uuid.UUID
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// ExpenseOutput represents a single expense in the output.
type ExpenseOutput struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Category    entity.Category
	Currency    string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses []*ExpenseOutput
	Total    decimal.Decimal
}

// ListExpensesUseCase handles listing expenses logic.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the expense listing.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	filter := adapter.ExpenseFilter{
		OwnerID:   input.OwnerID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		MinAmount: input.MinAmount,
		MaxAmount: input.MaxAmount,
	}

	if input.Category != "" {
		category, err := parseCategory(input.Category)
		if err != nil {
			return nil, err
		}
		filter.Category = &category
	}

	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseFilter,
			"end date must not be before start date",
			domainerror.ErrInvalidExpenseFilter,
		)
	}
	if input.MinAmount != nil && input.MaxAmount != nil && input.MaxAmount.LessThan(*input.MinAmount) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseFilter,
			"max amount must not be below min amount",
			domainerror.ErrInvalidExpenseFilter,
		)
	}

	expenses, err := uc.expenseRepo.FindByOwner(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	output := &ListExpensesOutput{
		Expenses: make([]*ExpenseOutput, 0, len(expenses)),
		Total:    decimal.Zero,
	}
	for _, expense := range expenses {
		output.Expenses = append(output.Expenses, toExpenseOutput(expense))
		output.Total = output.Total.Add(expense.Amount)
	}

	return output, nil
}

func toExpenseOutput(expense *entity.Expense) *ExpenseOutput {
	return &ExpenseOutput{
		ID:          expense.ID,
		OwnerID:     expense.OwnerID,
		Description: expense.Description,
		Amount:      expense.Amount,
		Date:        expense.Date,
		Category:    expense.Category,
		Currency:    expense.Currency,
		Notes:       expense.Notes,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}
