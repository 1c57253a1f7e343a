package owner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetProfileInput represents the input for retrieving a profile.
type GetProfileInput struct {
	OwnerID uuid.UUID
}

// ProfileOutput represents an owner's profile.
type ProfileOutput struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	Picture            string
	MonthlyBudgetLimit decimal.Decimal
	Currency           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// GetProfileOutput represents the output of retrieving a profile.
type GetProfileOutput struct {
	Profile *ProfileOutput
}

// GetProfileUseCase handles profile retrieval.
type GetProfileUseCase struct {
	ownerRepo adapter.OwnerRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(ownerRepo adapter.OwnerRepository) *GetProfileUseCase {
	return &GetProfileUseCase{
		ownerRepo: ownerRepo,
	}
}

// Execute retrieves the profile.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	owner, err := findOwner(ctx, uc.ownerRepo, input.OwnerID)
	if err != nil {
		return nil, err
	}

	return &GetProfileOutput{
		Profile: toProfileOutput(owner),
	}, nil
}

func findOwner(ctx context.Context, ownerRepo adapter.OwnerRepository, ownerID uuid.UUID) (*entity.Owner, error) {
	owner, err := ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrOwnerNotFound) {
			return nil, domainerror.NewOwnerError(
				domainerror.ErrCodeOwnerNotFound,
				"owner not found",
				domainerror.ErrOwnerNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	return owner, nil
}

func toProfileOutput(owner *entity.Owner) *ProfileOutput {
	return &ProfileOutput{
		ID:                 owner.ID,
		Email:              owner.Email,
		Name:               owner.Name,
		Picture:            owner.Picture,
		MonthlyBudgetLimit: owner.MonthlyBudgetLimit,
		Currency:           owner.Currency,
		CreatedAt:          owner.CreatedAt,
		UpdatedAt:          owner.UpdatedAt,
	}
}
