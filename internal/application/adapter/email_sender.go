package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// QueueBudgetAlertInput carries what the budget alert email needs.
type QueueBudgetAlertInput struct {
	OwnerID        string
	OwnerEmail     string
	OwnerName      string
	Year           int
	Month          int
	Currency       string
	TotalAmount    string
	MonthlyLimit   string
	PercentageUsed string
	AlertMessage   string
}

// EmailService defines the interface for queueing notification emails.
type EmailService interface {
	// QueueBudgetAlertEmail queues at most one alert per owner and month.
	// It returns false when an alert for that month was already queued.
	QueueBudgetAlertEmail(ctx context.Context, input QueueBudgetAlertInput) (bool, error)
}
