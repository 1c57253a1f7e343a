package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetSpendingPatternsInput represents the input for spending patterns.
// A nil Months selects DefaultPatternWindow.
type GetSpendingPatternsInput struct {
	OwnerID uuid.UUID
	Months  *int
	Order   PatternOrder
}

// GetSpendingPatternsOutput represents the output of spending patterns.
type GetSpendingPatternsOutput struct {
	Months      int
	Order       PatternOrder
	WindowStart time.Time
	WindowEnd   time.Time
	Patterns    []entity.MonthlyPattern
}

// GetSpendingPatternsUseCase builds per-month spending series for a trailing window.
type GetSpendingPatternsUseCase struct {
	expenseRepo adapter.ExpenseRepository
	now         func() time.Time
}

// NewGetSpendingPatternsUseCase creates a new GetSpendingPatternsUseCase instance.
// now supplies the window's end instant; nil means time.Now.
func NewGetSpendingPatternsUseCase(expenseRepo adapter.ExpenseRepository, now func() time.Time) *GetSpendingPatternsUseCase {
	if now == nil {
		now = time.Now
	}
	return &GetSpendingPatternsUseCase{
		expenseRepo: expenseRepo,
		now:         now,
	}
}

// Execute computes the spending patterns.
func (uc *GetSpendingPatternsUseCase) Execute(ctx context.Context, input GetSpendingPatternsInput) (*GetSpendingPatternsOutput, error) {
	months := DefaultPatternWindow
	if input.Months != nil {
		months = *input.Months
	}
	if err := ValidateWindow(months); err != nil {
		return nil, err
	}

	order := input.Order
	if order == "" {
		order = PatternOrderLexical
	}

	now := uc.now()
	start, end := PatternWindow(months, now)

	records, err := uc.expenseRepo.FindByOwner(ctx, adapter.ExpenseFilter{
		OwnerID:   input.OwnerID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	patterns := ComputeSpendingPatterns(records, months, now)
	if order == PatternOrderChronological {
		patterns = SortPatternsChronologically(patterns)
	}

	return &GetSpendingPatternsOutput{
		Months:      months,
		Order:       order,
		WindowStart: start,
		WindowEnd:   end,
		Patterns:    patterns,
	}, nil
}
