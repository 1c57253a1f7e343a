package stats

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetMonthlyStatsInput represents the input for monthly statistics.
type GetMonthlyStatsInput struct {
	OwnerID uuid.UUID
	Year    int
	Month   int
}

// GetMonthlyStatsOutput represents the output of monthly statistics.
type GetMonthlyStatsOutput struct {
	Year      int
	Month     int
	Aggregate *entity.MonthlyAggregate
	Cached    bool
}

// GetMonthlyStatsUseCase handles monthly statistics retrieval.
type GetMonthlyStatsUseCase struct {
	loader *MonthlyLoader
}

// NewGetMonthlyStatsUseCase creates a new GetMonthlyStatsUseCase instance.
func NewGetMonthlyStatsUseCase(loader *MonthlyLoader) *GetMonthlyStatsUseCase {
	return &GetMonthlyStatsUseCase{
		loader: loader,
	}
}

// Execute aggregates the owner's expenses for the requested month.
func (uc *GetMonthlyStatsUseCase) Execute(ctx context.Context, input GetMonthlyStatsInput) (*GetMonthlyStatsOutput, error) {
	if err := ValidateYearMonth(input.Year, input.Month); err != nil {
		return nil, err
	}

	aggregate, cached, err := uc.loader.Load(ctx, input.OwnerID, input.Year, input.Month)
	if err != nil {
		return nil, err
	}

	return &GetMonthlyStatsOutput{
		Year:      input.Year,
		Month:     input.Month,
		Aggregate: aggregate,
		Cached:    cached,
	}, nil
}
