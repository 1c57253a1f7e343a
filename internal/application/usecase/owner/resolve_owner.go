// Package owner contains owner-related use cases.
package owner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ResolveOwnerInput represents the input for owner resolution.
type ResolveOwnerInput struct {
	Claims entity.IdentityClaims
}

// ResolveOwnerOutput represents the output of owner resolution.
type ResolveOwnerOutput struct {
	Owner   *entity.Owner
	Created bool
}

// ResolveOwnerUseCase maps an external identity to a local owner, creating it on first sight.
type ResolveOwnerUseCase struct {
	ownerRepo       adapter.OwnerRepository
	defaultLimit    decimal.Decimal
	defaultCurrency string
}

// NewResolveOwnerUseCase creates a new ResolveOwnerUseCase instance.
func NewResolveOwnerUseCase(ownerRepo adapter.OwnerRepository, defaultLimit decimal.Decimal, defaultCurrency string) *ResolveOwnerUseCase {
	return &ResolveOwnerUseCase{
		ownerRepo:       ownerRepo,
		defaultLimit:    defaultLimit,
		defaultCurrency: defaultCurrency,
	}
}

// Execute returns the owner bound to the claims' subject. Calling it twice
// with the same subject yields the same owner.
func (uc *ResolveOwnerUseCase) Execute(ctx context.Context, input ResolveOwnerInput) (*ResolveOwnerOutput, error) {
	claims := input.Claims
	claims.Subject = strings.TrimSpace(claims.Subject)
	if claims.Subject == "" {
		return nil, domainerror.NewOwnerError(
			domainerror.ErrCodeMissingSubject,
			"identity token has no subject",
			domainerror.ErrMissingSubject,
		)
	}

	owner, err := uc.ownerRepo.FindByExternalID(ctx, claims.Subject)
	if err == nil {
		if err := uc.refresh(ctx, owner, claims); err != nil {
			return nil, err
		}
		return &ResolveOwnerOutput{Owner: owner}, nil
	}
	if !errors.Is(err, domainerror.ErrOwnerNotFound) {
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	owner = entity.NewOwner(claims, uc.defaultLimit, uc.defaultCurrency)
	if err := uc.ownerRepo.Create(ctx, owner); err != nil {
		if !errors.Is(err, domainerror.ErrOwnerAlreadyExists) {
			return nil, fmt.Errorf("failed to create owner: %w", err)
		}

		// A concurrent request created it first.
		winner, findErr := uc.ownerRepo.FindByExternalID(ctx, claims.Subject)
		if findErr != nil {
			return nil, fmt.Errorf("failed to find owner after conflict: %w", findErr)
		}
		if err := uc.refresh(ctx, winner, claims); err != nil {
			return nil, err
		}
		return &ResolveOwnerOutput{Owner: winner}, nil
	}

	slog.Info("Owner created",
		"owner_id", owner.ID,
		"external_id", owner.ExternalID,
	)

	return &ResolveOwnerOutput{Owner: owner, Created: true}, nil
}

func (uc *ResolveOwnerUseCase) refresh(ctx context.Context, owner *entity.Owner, claims entity.IdentityClaims) error {
	if !owner.ApplyClaims(claims) {
		return nil
	}
	if err := uc.ownerRepo.Update(ctx, owner); err != nil {
		return fmt.Errorf("failed to update owner: %w", err)
	}
	return nil
}
