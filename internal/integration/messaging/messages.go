// Package messaging publishes expense domain events to RabbitMQ.
package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// ExpenseEventMessage is the JSON body of an expense event. Amounts are
// decimal strings so consumers never see float rounding.
type ExpenseEventMessage struct {
	Type       string    `json:"type"`
	ExpenseID  uuid.UUID `json:"expense_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Amount     string    `json:"amount"`
	Category   string    `json:"category"`
	Date       time.Time `json:"date"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewExpenseEventMessage converts a domain event into its wire form.
func NewExpenseEventMessage(event adapter.ExpenseEvent) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		Type:       string(event.Type),
		ExpenseID:  event.ExpenseID,
		OwnerID:    event.OwnerID,
		Amount:     event.Amount.StringFixed(2),
		Category:   event.Category,
		Date:       event.Date.UTC(),
		OccurredAt: event.OccurredAt.UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON decodes a message body.
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal expense event: %w", err)
	}
	return &msg, nil
}
