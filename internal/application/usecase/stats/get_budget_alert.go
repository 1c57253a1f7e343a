package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetBudgetAlertInput represents the input for a budget alert check.
type GetBudgetAlertInput struct {
	OwnerID uuid.UUID
	Year    int
	Month   int
}

// GetBudgetAlertOutput represents the output of a budget alert check.
type GetBudgetAlertOutput struct {
	Year     int
	Month    int
	Currency string
	Alert    *entity.BudgetAlert
}

// GetBudgetAlertUseCase evaluates a month's spending against the owner's budget.
type GetBudgetAlertUseCase struct {
	ownerRepo adapter.OwnerRepository
	loader    *MonthlyLoader
}

// NewGetBudgetAlertUseCase creates a new GetBudgetAlertUseCase instance.
func NewGetBudgetAlertUseCase(ownerRepo adapter.OwnerRepository, loader *MonthlyLoader) *GetBudgetAlertUseCase {
	return &GetBudgetAlertUseCase{
		ownerRepo: ownerRepo,
		loader:    loader,
	}
}

// Execute performs the budget alert evaluation.
func (uc *GetBudgetAlertUseCase) Execute(ctx context.Context, input GetBudgetAlertInput) (*GetBudgetAlertOutput, error) {
	if err := ValidateYearMonth(input.Year, input.Month); err != nil {
		return nil, err
	}

	owner, err := findOwner(ctx, uc.ownerRepo, input.OwnerID)
	if err != nil {
		return nil, err
	}

	aggregate, _, err := uc.loader.Load(ctx, input.OwnerID, input.Year, input.Month)
	if err != nil {
		return nil, err
	}

	alert, err := BudgetAlertFor(aggregate, owner.MonthlyBudgetLimit)
	if err != nil {
		return nil, err
	}

	return &GetBudgetAlertOutput{
		Year:     input.Year,
		Month:    input.Month,
		Currency: owner.Currency,
		Alert:    alert,
	}, nil
}

func findOwner(ctx context.Context, ownerRepo adapter.OwnerRepository, ownerID uuid.UUID) (*entity.Owner, error) {
	owner, err := ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrOwnerNotFound) {
			return nil, domainerror.NewStatsError(
				domainerror.ErrCodeStatsOwnerNotFound,
				"owner not found",
				err,
			)
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	return owner, nil
}
