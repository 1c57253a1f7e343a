package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the status of an email job in the queue.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType represents the type of email template.
type EmailTemplateType string

const (
	TemplateBudgetAlert EmailTemplateType = "budget_alert"
)

// defaultMaxEmailAttempts bounds delivery retries for a job.
const defaultMaxEmailAttempts = 3

// retryDelays indexed by attempt count.
var retryDelays = []time.Duration{0, 1 * time.Minute, 5 * time.Minute}

// EmailJob represents an email in the queue waiting to be sent.
// DedupeKey, when set, is unique across the queue.
type EmailJob struct {
	ID             uuid.UUID
	TemplateType   EmailTemplateType
	DedupeKey      string
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]interface{}
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ProviderID     string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob creates a new pending EmailJob.
func NewEmailJob(templateType EmailTemplateType, dedupeKey, recipientEmail, recipientName, subject string, data map[string]interface{}) *EmailJob {
	now := time.Now().UTC()
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		DedupeKey:      dedupeKey,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    defaultMaxEmailAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing marks the email job as currently being processed.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent marks the email job as delivered to the provider.
func (e *EmailJob) MarkSent(providerID string) {
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	now := time.Now().UTC()
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. The job is rescheduled unless the
// failure is permanent or the attempts are exhausted.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		now := time.Now().UTC()
		e.ProcessedAt = &now
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = e.nextRetry()
}

func (e *EmailJob) nextRetry() time.Time {
	delay := retryDelays[len(retryDelays)-1]
	if e.Attempts < len(retryDelays) {
		delay = retryDelays[e.Attempts]
	}
	return time.Now().UTC().Add(delay)
}

// CanRetry returns true if the email job can be retried.
func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}
