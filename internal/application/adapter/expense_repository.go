// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseFilter narrows an owner's expenses. Nil fields are not applied.
// Date bounds are inclusive.
type ExpenseFilter struct {
	OwnerID   uuid.UUID
	Category  *entity.Category
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create persists a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByOwner retrieves the owner's expenses matching the filter, newest first.
	FindByOwner(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, error)

	// Update saves changes to an existing expense.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete soft-deletes an expense.
	Delete(ctx context.Context, id uuid.UUID) error
}
