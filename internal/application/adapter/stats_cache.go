package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// StatsCache stores computed monthly aggregates per owner.
// GetMonthly reports a miss as a nil aggregate and always returns the
// owner's current version. SetMonthly stores under the version it is
// given, so an aggregate computed before an Invalidate is never served.
type StatsCache interface {
	GetMonthly(ctx context.Context, ownerID uuid.UUID, year, month int) (*entity.MonthlyAggregate, int64, error)
	SetMonthly(ctx context.Context, ownerID uuid.UUID, version int64, year, month int, aggregate *entity.MonthlyAggregate) error

	// Invalidate drops every cached aggregate of the owner.
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}
