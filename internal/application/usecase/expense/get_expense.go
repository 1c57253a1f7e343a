package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetExpenseInput represents the input for retrieving an expense.
type GetExpenseInput struct {
	ExpenseID uuid.UUID
	OwnerID   uuid.UUID
}

// GetExpenseOutput represents the output of retrieving an expense.
type GetExpenseOutput struct {
	Expense *ExpenseOutput
}

// GetExpenseUseCase handles single expense retrieval.
type GetExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewGetExpenseUseCase creates a new GetExpenseUseCase instance.
func NewGetExpenseUseCase(expenseRepo adapter.ExpenseRepository) *GetExpenseUseCase {
	return &GetExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute retrieves the expense.
func (uc *GetExpenseUseCase) Execute(ctx context.Context, input GetExpenseInput) (*GetExpenseOutput, error) {
	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.ExpenseID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	return &GetExpenseOutput{
		Expense: toExpenseOutput(expense),
	}, nil
}

// findOwnedExpense loads an expense and hides records owned by someone else behind not found.
func findOwnedExpense(ctx context.Context, repo adapter.ExpenseRepository, expenseID, ownerID uuid.UUID) (*entity.Expense, error) {
	expense, err := repo.FindByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, expenseNotFound()
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	if !expense.BelongsTo(ownerID) {
		return nil, expenseNotFound()
	}

	return expense, nil
}
