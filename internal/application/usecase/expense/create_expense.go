package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateExpenseInput represents the input for expense creation.
// Currency falls back to the owner's currency when empty.
type CreateExpenseInput struct {
	OwnerID     uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Category    string
	Currency    string
	Notes       string
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *ExpenseOutput
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	ownerRepo   adapter.OwnerRepository
	effects     *WriteEffects
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	ownerRepo adapter.OwnerRepository,
	effects *WriteEffects,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		ownerRepo:   ownerRepo,
		effects:     effects,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	description, err := validateDescription(input.Description)
	if err != nil {
		return nil, err
	}
	if err := validateNotes(input.Notes); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}
	category, err := parseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		owner, err := uc.ownerRepo.FindByID(ctx, input.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to find owner: %w", err)
		}
		currency = owner.Currency
	}
	if currency, err = parseCurrency(currency); err != nil {
		return nil, err
	}

	expense := entity.NewExpense(
		input.OwnerID,
		description,
		input.Amount,
		input.Date,
		category,
		currency,
		input.Notes,
	)

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	uc.effects.apply(ctx, adapter.ExpenseCreated, expense, expense.Date)

	return &CreateExpenseOutput{
		Expense: toExpenseOutput(expense),
	}, nil
}
