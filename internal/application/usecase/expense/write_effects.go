package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// BudgetChecker re-evaluates an owner's budget for a month.
type BudgetChecker interface {
	Check(ctx context.Context, ownerID uuid.UUID, year, month int) (bool, error)
}

// WriteEffects runs the follow-up work of a committed expense change.
// Every dependency is optional and failures are only logged.
type WriteEffects struct {
	cache     adapter.StatsCache
	publisher adapter.EventPublisher
	metrics   adapter.MetricsRecorder
	budget    BudgetChecker
}

// NewWriteEffects creates a new WriteEffects instance.
func NewWriteEffects(
	cache adapter.StatsCache,
	publisher adapter.EventPublisher,
	metrics adapter.MetricsRecorder,
	budget BudgetChecker,
) *WriteEffects {
	return &WriteEffects{
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		budget:    budget,
	}
}

// apply runs after a write. checkMonths lists the months whose budget must be re-evaluated.
func (w *WriteEffects) apply(ctx context.Context, eventType adapter.ExpenseEventType, expense *entity.Expense, checkMonths ...time.Time) {
	if w == nil {
		return
	}

	if w.cache != nil {
		if err := w.cache.Invalidate(ctx, expense.OwnerID); err != nil {
			slog.Warn("Failed to invalidate stats cache",
				"owner_id", expense.OwnerID,
				"error", err,
			)
		}
	}

	if w.publisher != nil {
		event := adapter.ExpenseEvent{
			Type:       eventType,
			ExpenseID:  expense.ID,
			OwnerID:    expense.OwnerID,
			Amount:     expense.Amount,
			Category:   string(expense.Category),
			Date:       expense.Date,
			OccurredAt: time.Now().UTC(),
		}
		if err := w.publisher.Publish(ctx, event); err != nil {
			slog.Warn("Failed to publish expense event",
				"event_type", eventType,
				"expense_id", expense.ID,
				"error", err,
			)
		}
	}

	if w.metrics != nil {
		w.metrics.RecordExpenseWrite(string(eventType))
	}

	if w.budget == nil {
		return
	}
	seen := make(map[string]bool, len(checkMonths))
	for _, date := range checkMonths {
		date = date.UTC()
		key := date.Format("2006-01")
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, err := w.budget.Check(ctx, expense.OwnerID, date.Year(), int(date.Month())); err != nil {
			slog.Warn("Budget check failed",
				"owner_id", expense.OwnerID,
				"month", key,
				"error", err,
			)
		}
	}
}
