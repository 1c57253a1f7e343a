package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single spending record owned by exactly one owner.
type Expense struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Description string
	Amount      decimal.Decimal // Always non-negative
	Date        time.Time
	Category    Category
	Currency    string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewExpense creates a new Expense entity.
func NewExpense(
	ownerID uuid.UUID,
	description string,
	amount decimal.Decimal,
	date time.Time,
	category Category,
	currency string,
	notes string,
) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Description: description,
		Amount:      amount,
		Date:        date.UTC(),
		Category:    category,
		Currency:    currency,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// BelongsTo reports whether the expense is owned by ownerID.
func (e *Expense) BelongsTo(ownerID uuid.UUID) bool {
	return e.OwnerID == ownerID
}
