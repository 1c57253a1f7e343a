package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// BudgetMonitor re-evaluates an owner's budget after spending changes and
// queues one alert email per owner and month once the threshold is crossed.
type BudgetMonitor struct {
	ownerRepo    adapter.OwnerRepository
	loader       *MonthlyLoader
	emailService adapter.EmailService
	metrics      adapter.MetricsRecorder
}

// NewBudgetMonitor creates a new BudgetMonitor. emailService and metrics may be nil.
func NewBudgetMonitor(
	ownerRepo adapter.OwnerRepository,
	loader *MonthlyLoader,
	emailService adapter.EmailService,
	metrics adapter.MetricsRecorder,
) *BudgetMonitor {
	return &BudgetMonitor{
		ownerRepo:    ownerRepo,
		loader:       loader,
		emailService: emailService,
		metrics:      metrics,
	}
}

// Check evaluates the month and reports whether an alert email was queued.
func (m *BudgetMonitor) Check(ctx context.Context, ownerID uuid.UUID, year, month int) (bool, error) {
	owner, err := findOwner(ctx, m.ownerRepo, ownerID)
	if err != nil {
		return false, err
	}

	aggregate, _, err := m.loader.Load(ctx, ownerID, year, month)
	if err != nil {
		return false, err
	}

	alert, err := BudgetAlertFor(aggregate, owner.MonthlyBudgetLimit)
	if err != nil {
		return false, err
	}
	if !alert.IsAlert {
		return false, nil
	}

	queued := false
	if m.emailService != nil {
		queued, err = m.emailService.QueueBudgetAlertEmail(ctx, adapter.QueueBudgetAlertInput{
			OwnerID:        owner.ID.String(),
			OwnerEmail:     owner.Email,
			OwnerName:      owner.Name,
			Year:           year,
			Month:          month,
			Currency:       owner.Currency,
			TotalAmount:    alert.TotalAmount.StringFixed(2),
			MonthlyLimit:   alert.MonthlyLimit.StringFixed(2),
			PercentageUsed: alert.PercentageUsed.StringFixed(1),
			AlertMessage:   alert.AlertMessage,
		})
		if err != nil {
			return false, fmt.Errorf("failed to queue budget alert: %w", err)
		}
	}

	if m.metrics != nil {
		m.metrics.RecordBudgetAlert(queued)
	}

	if queued {
		slog.Info("Budget alert queued",
			"owner_id", ownerID,
			"year", year,
			"month", month,
			"percentage_used", alert.PercentageUsed.StringFixed(1),
		)
	}

	return queued, nil
}
