package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseEventType names a change to an expense.
type ExpenseEventType string

const (
	ExpenseCreated ExpenseEventType = "expense.created"
	ExpenseUpdated ExpenseEventType = "expense.updated"
	ExpenseDeleted ExpenseEventType = "expense.deleted"
)

// ExpenseEvent describes a committed change to an expense.
type ExpenseEvent struct {
	Type       ExpenseEventType
	ExpenseID  uuid.UUID
	OwnerID    uuid.UUID
	Amount     decimal.Decimal
	Category   string
	Date       time.Time
	OccurredAt time.Time
}

// EventPublisher publishes expense events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event ExpenseEvent) error
}
