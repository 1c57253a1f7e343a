package owner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// MaxNameLength is the maximum allowed length for display names.
const MaxNameLength = 100

// UpdateProfileInput represents the input for a profile update.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	OwnerID            uuid.UUID
	Name               *string
	MonthlyBudgetLimit *decimal.Decimal
	Currency           *string
}

// UpdateProfileOutput represents the output of a profile update.
type UpdateProfileOutput struct {
	Profile *ProfileOutput
}

// UpdateProfileUseCase handles profile update logic.
type UpdateProfileUseCase struct {
	ownerRepo adapter.OwnerRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(ownerRepo adapter.OwnerRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		ownerRepo: ownerRepo,
	}
}

// Execute performs the profile update.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	if input.Name == nil && input.MonthlyBudgetLimit == nil && input.Currency == nil {
		return nil, domainerror.NewOwnerError(
			domainerror.ErrCodeMissingProfileFields,
			"at least one field must be provided",
			nil,
		)
	}

	owner, err := findOwner(ctx, uc.ownerRepo, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > MaxNameLength {
			return nil, domainerror.NewOwnerError(
				domainerror.ErrCodeMissingProfileFields,
				fmt.Sprintf("name must be between 1 and %d characters", MaxNameLength),
				nil,
			)
		}
		owner.Name = name
	}

	if input.MonthlyBudgetLimit != nil {
		if !input.MonthlyBudgetLimit.IsPositive() {
			return nil, domainerror.NewOwnerError(
				domainerror.ErrCodeInvalidBudgetLimitUpdate,
				"monthly budget limit must be greater than zero",
				domainerror.ErrInvalidBudgetLimitUpdate,
			)
		}
		owner.MonthlyBudgetLimit = *input.MonthlyBudgetLimit
	}

	if input.Currency != nil {
		currency, ok := entity.NormalizeCurrency(*input.Currency)
		if !ok {
			return nil, domainerror.NewOwnerError(
				domainerror.ErrCodeInvalidCurrency,
				"currency must be a three-letter code",
				domainerror.ErrInvalidCurrency,
			)
		}
		owner.Currency = currency
	}

	owner.UpdatedAt = time.Now().UTC()

	if err := uc.ownerRepo.Update(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to update owner: %w", err)
	}

	return &UpdateProfileOutput{
		Profile: toProfileOutput(owner),
	}, nil
}
