package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// ownerRepository implements the adapter.OwnerRepository interface.
type ownerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository creates a new owner repository instance.
func NewOwnerRepository(db *gorm.DB) adapter.OwnerRepository {
	return &ownerRepository{
		db: db,
	}
}

// Create creates a new owner in the database.
func (r *ownerRepository) Create(ctx context.Context, owner *entity.Owner) error {
	ownerModel := model.OwnerFromEntity(owner)
	result := r.db.WithContext(ctx).Create(ownerModel)
	if result.Error == nil {
		return nil
	}
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return domainerror.ErrOwnerAlreadyExists
	}

	// Drivers without error translation report the unique violation as a plain error.
	if _, err := r.FindByExternalID(ctx, owner.ExternalID); err == nil {
		return domainerror.ErrOwnerAlreadyExists
	}
	return result.Error
}

// FindByID retrieves an owner by its ID.
func (r *ownerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error) {
	var ownerModel model.OwnerModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&ownerModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrOwnerNotFound
		}
		return nil, result.Error
	}
	return ownerModel.ToEntity(), nil
}

// FindByExternalID retrieves the owner bound to an identity-provider subject.
func (r *ownerRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.Owner, error) {
	var ownerModel model.OwnerModel
	result := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&ownerModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrOwnerNotFound
		}
		return nil, result.Error
	}
	return ownerModel.ToEntity(), nil
}

// Update updates an existing owner in the database.
func (r *ownerRepository) Update(ctx context.Context, owner *entity.Owner) error {
	ownerModel := model.OwnerFromEntity(owner)
	result := r.db.WithContext(ctx).Save(ownerModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
