// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
	printer    *message.Printer
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
		printer:    message.NewPrinter(language.English),
	}
}

// BudgetAlertDedupeKey identifies the single alert allowed per owner and month.
func BudgetAlertDedupeKey(ownerID string, year, month int) string {
	return fmt.Sprintf("%s:%s:%04d-%02d", entity.TemplateBudgetAlert, ownerID, year, month)
}

// QueueBudgetAlertEmail queues a budget alert email unless one was already
// queued for the same owner and month.
func (s *Service) QueueBudgetAlertEmail(ctx context.Context, input adapter.QueueBudgetAlertInput) (bool, error) {
	period := time.Date(input.Year, time.Month(input.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	subject := fmt.Sprintf("Budget alert: %s%% of your %s budget used", input.PercentageUsed, period)

	templateData := map[string]interface{}{
		"owner_name":      input.OwnerName,
		"period":          period,
		"currency":        input.Currency,
		"total_amount":    s.formatAmount(input.TotalAmount),
		"monthly_limit":   s.formatAmount(input.MonthlyLimit),
		"percentage_used": input.PercentageUsed,
		"alert_message":   input.AlertMessage,
		"app_url":         s.appBaseURL,
	}

	job := entity.NewEmailJob(
		entity.TemplateBudgetAlert,
		BudgetAlertDedupeKey(input.OwnerID, input.Year, input.Month),
		input.OwnerEmail,
		input.OwnerName,
		subject,
		templateData,
	)

	queued, err := s.queue.Enqueue(ctx, job)
	if err != nil {
		return false, domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue budget alert email",
			err,
		)
	}

	return queued, nil
}

// formatAmount groups thousands, e.g. "12345.5" becomes "12,345.50".
// Unparseable input is returned as is.
func (s *Service) formatAmount(amount string) string {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	return s.printer.Sprintf("%.2f", value.InexactFloat64())
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
