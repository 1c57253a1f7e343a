package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// DeleteExpenseInput represents the input for expense deletion.
type DeleteExpenseInput struct {
	ExpenseID uuid.UUID
	OwnerID   uuid.UUID
}

// DeleteExpenseOutput represents the output of expense deletion.
type DeleteExpenseOutput struct {
	Success bool
}

// DeleteExpenseUseCase handles expense deletion logic.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	effects     *WriteEffects
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(expenseRepo adapter.ExpenseRepository, effects *WriteEffects) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		expenseRepo: expenseRepo,
		effects:     effects,
	}
}

// Execute performs the expense deletion.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.ExpenseID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	// Soft delete
	if err := uc.expenseRepo.Delete(ctx, expense.ID); err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}

	// Spending only goes down, so no budget check.
	uc.effects.apply(ctx, adapter.ExpenseDeleted, expense)

	return &DeleteExpenseOutput{
		Success: true,
	}, nil
}
