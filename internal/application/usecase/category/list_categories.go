// Package category contains category-related use cases.
package category

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	OwnerID   uuid.UUID
	StartDate *time.Time // Optional start date for statistics
	EndDate   *time.Time // Optional end date for statistics
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	Category     entity.Category
	Name         string
	Color        string
	Icon         string
	ExpenseCount int
	PeriodTotal  decimal.Decimal
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(expenseRepo adapter.ExpenseRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	catalog := entity.CategoryCatalog()

	output := &ListCategoriesOutput{
		Categories: make([]*CategoryOutput, len(catalog)),
	}
	byCategory := make(map[entity.Category]*CategoryOutput, len(catalog))
	for i, info := range catalog {
		out := &CategoryOutput{
			Category:    info.Category,
			Name:        info.Name,
			Color:       info.Color,
			Icon:        info.Icon,
			PeriodTotal: decimal.Zero,
		}
		output.Categories[i] = out
		byCategory[info.Category] = out
	}

	// Get expense statistics if date range is provided
	if input.StartDate == nil || input.EndDate == nil {
		return output, nil
	}

	expenses, err := uc.expenseRepo.FindByOwner(ctx, adapter.ExpenseFilter{
		OwnerID:   input.OwnerID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		// Log error but continue without stats
		slog.Warn("Failed to load category statistics",
			"owner_id", input.OwnerID,
			"error", err,
		)
		return output, nil
	}

	for _, expense := range expenses {
		out, ok := byCategory[expense.Category]
		if !ok {
			continue
		}
		out.ExpenseCount++
		out.PeriodTotal = out.PeriodTotal.Add(expense.Amount)
	}

	return output, nil
}
