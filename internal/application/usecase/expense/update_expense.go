package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// UpdateExpenseInput represents the input for expense update.
// Nil fields are left unchanged.
type UpdateExpenseInput struct {
	ExpenseID   uuid.UUID
	OwnerID     uuid.UUID
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Category    *string
	Currency    *string
	Notes       *string
}

// UpdateExpenseOutput represents the output of expense update.
type UpdateExpenseOutput struct {
	Expense *ExpenseOutput
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	effects     *WriteEffects
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(expenseRepo adapter.ExpenseRepository, effects *WriteEffects) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo: expenseRepo,
		effects:     effects,
	}
}

// Execute performs the expense update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.ExpenseID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	previousDate := expense.Date

	if input.Description != nil {
		description, err := validateDescription(*input.Description)
		if err != nil {
			return nil, err
		}
		expense.Description = description
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		expense.Amount = *input.Amount
	}

	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return nil, err
		}
		expense.Date = input.Date.UTC()
	}

	if input.Category != nil {
		category, err := parseCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		expense.Category = category
	}

	if input.Currency != nil {
		currency, err := parseCurrency(*input.Currency)
		if err != nil {
			return nil, err
		}
		expense.Currency = currency
	}

	if input.Notes != nil {
		if err := validateNotes(*input.Notes); err != nil {
			return nil, err
		}
		expense.Notes = *input.Notes
	}

	expense.UpdatedAt = time.Now().UTC()

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	uc.effects.apply(ctx, adapter.ExpenseUpdated, expense, expense.Date, previousDate)

	return &UpdateExpenseOutput{
		Expense: toExpenseOutput(expense),
	}, nil
}
