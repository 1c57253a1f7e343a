package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// MonthlyLoader fetches an owner's records for a month and aggregates them,
// going through the stats cache when one is configured.
type MonthlyLoader struct {
	expenseRepo adapter.ExpenseRepository
	cache       adapter.StatsCache
}

// NewMonthlyLoader creates a MonthlyLoader. cache may be nil.
func NewMonthlyLoader(expenseRepo adapter.ExpenseRepository, cache adapter.StatsCache) *MonthlyLoader {
	return &MonthlyLoader{
		expenseRepo: expenseRepo,
		cache:       cache,
	}
}

// Load returns the aggregate for the month and whether it came from the cache.
func (l *MonthlyLoader) Load(ctx context.Context, ownerID uuid.UUID, year, month int) (*entity.MonthlyAggregate, bool, error) {
	// The version is read before the records so a write landing in between
	// leaves the stored aggregate under a stale version.
	var version int64
	cacheable := false
	if l.cache != nil {
		cached, v, err := l.cache.GetMonthly(ctx, ownerID, year, month)
		switch {
		case err != nil:
			slog.Warn("Stats cache read failed", "owner_id", ownerID, "year", year, "month", month, "error", err)
		case cached != nil:
			return cached, true, nil
		default:
			version, cacheable = v, true
		}
	}

	start, end := MonthBounds(year, time.Month(month))
	records, err := l.expenseRepo.FindByOwner(ctx, adapter.ExpenseFilter{
		OwnerID:   ownerID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to load expenses: %w", err)
	}

	aggregate := ComputeMonthlyAggregate(records, year, time.Month(month))

	if cacheable {
		if err := l.cache.SetMonthly(ctx, ownerID, version, year, month, aggregate); err != nil {
			slog.Warn("Stats cache write failed", "owner_id", ownerID, "year", year, "month", month, "error", err)
		}
	}

	return aggregate, false, nil
}
