package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// OwnerRepository defines the interface for owner persistence operations.
type OwnerRepository interface {
	// Create persists a new owner. It returns domainerror.ErrOwnerAlreadyExists
	// when another owner holds the same external identity.
	Create(ctx context.Context, owner *entity.Owner) error

	// FindByID retrieves an owner by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error)

	// FindByExternalID retrieves the owner bound to an identity-provider subject.
	FindByExternalID(ctx context.Context, externalID string) (*entity.Owner, error)

	// Update saves changes to an existing owner.
	Update(ctx context.Context, owner *entity.Owner) error
}
